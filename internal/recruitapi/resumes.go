package recruitapi

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	resumesPath     = "/resumes"
	resumesResource = "resumes"
	resumeFileField = "file"
	// MaxResumeSize is the documented upload limit. The server enforces it, we only warn.
	MaxResumeSize = 10 << 20
)

var resumeFileTypes = map[string]string{
	".pdf":  "application/pdf",
	".json": "application/json",
}

type Resume struct {
	ID         string       `json:"id,omitempty"`
	Name       string       `json:"name"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []string     `json:"skills"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	CreatedAt  string       `json:"created_at,omitempty"`
	UpdatedAt  string       `json:"updated_at,omitempty"`
}

type Education struct {
	Institution  string  `json:"institution"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"field_of_study,omitempty"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`
	GPA          float64 `json:"gpa,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ResumeUpload is a single PDF or JSON file sent to POST /resumes.
type ResumeUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

func (u ResumeUpload) Validate() error {
	if strings.TrimSpace(u.Filename) == "" || u.Content == nil {
		return &ValidationError{
			Resource: resumesResource,
			Fields:   []string{resumeFileField},
			Message:  "Please select a file to upload.",
		}
	}

	if _, ok := resumeFileTypes[strings.ToLower(filepath.Ext(u.Filename))]; !ok {
		return &ValidationError{
			Resource: resumesResource,
			Fields:   []string{resumeFileField},
			Message:  "Only PDF and JSON resumes are supported.",
		}
	}

	return nil
}

func (c *Client) ListResumes(ctx context.Context) ([]Resume, error) {
	items, err := c.getItems(ctx, fmt.Sprintf("%s%s", c.APIURL, resumesPath))
	if err != nil {
		return nil, &FetchError{Resource: resumesResource, Err: err}
	}

	var resumes []Resume
	if err = decodeItems(items, &resumes); err != nil {
		return nil, &FetchError{Resource: resumesResource, Err: fmt.Errorf("decode resumes: %w", err)}
	}

	if resumes == nil {
		resumes = []Resume{}
	}

	return resumes, nil
}

func (c *Client) GetResume(ctx context.Context, id string) (Resume, error) {
	var resume Resume
	if strings.TrimSpace(id) == "" {
		return resume, &ValidationError{Resource: resumesResource, Fields: []string{"id"}, Message: "resume id is required"}
	}

	if err := c.getJSON(ctx, c.resumeURL(id), &resume); err != nil {
		return resume, &FetchError{Resource: resumesResource, ID: id, Err: err}
	}

	return resume, nil
}

// UploadResume sends the file as the multipart field "file".
func (c *Client) UploadResume(ctx context.Context, upload ResumeUpload) (Resume, error) {
	var resume Resume
	if err := upload.Validate(); err != nil {
		return resume, err
	}

	if upload.Size > MaxResumeSize {
		c.logger.Warn("resume file exceeds the documented size limit",
			zap.String("file", upload.Filename),
			zap.Int64("size", upload.Size),
			zap.Int64("limit", MaxResumeSize),
		)
	}

	fileType := resumeFileTypes[strings.ToLower(filepath.Ext(upload.Filename))]
	target := fmt.Sprintf("%s%s", c.APIURL, resumesPath)

	if err := c.postFile(ctx, target, resumeFileField, filepath.Base(upload.Filename), fileType, upload.Content, &resume); err != nil {
		return resume, &MutationError{Op: "upload", Resource: resumesResource, Err: err}
	}

	return resume, nil
}

func (c *Client) DeleteResume(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Resource: resumesResource, Fields: []string{"id"}, Message: "resume id is required"}
	}

	if err := c.deleteResource(ctx, c.resumeURL(id)); err != nil {
		return &MutationError{Op: "delete", Resource: resumesResource, ID: id, Err: err}
	}

	return nil
}

func (c *Client) resumeURL(id string) string {
	return fmt.Sprintf("%s%s/%s", c.APIURL, resumesPath, url.PathEscape(id))
}
