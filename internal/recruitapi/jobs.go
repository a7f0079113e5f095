package recruitapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	jobsPath       = "/jobs"
	jobsResource   = "jobs"
	DefaultJobType = "Full-time"
)

// JobTypes lists the job types offered by the job form.
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Freelance", "Internship", "Remote"}

type Job struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Description        string   `json:"description"`
	Location           string   `json:"location,omitempty"`
	JobType            string   `json:"job_type,omitempty"`
	ExperienceRequired int      `json:"experience_required"`
	SalaryRange        string   `json:"salary_range,omitempty"`
	SkillsRequired     []string `json:"skills_required"`
	Requirements       []string `json:"requirements"`
	Qualifications     []string `json:"qualifications"`
	CreatedAt          string   `json:"created_at,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

// JobInput is the payload for creating or updating a job posting.
type JobInput struct {
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Description        string   `json:"description"`
	Location           string   `json:"location"`
	JobType            string   `json:"job_type"`
	ExperienceRequired int      `json:"experience_required"`
	SalaryRange        string   `json:"salary_range"`
	SkillsRequired     []string `json:"skills_required"`
	Requirements       []string `json:"requirements"`
	Qualifications     []string `json:"qualifications"`
}

// Validate checks the fields the API requires. It never touches the network.
func (in JobInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}

	if len(missing) > 0 {
		return &ValidationError{
			Resource: jobsResource,
			Fields:   missing,
			Message:  "Please fill in all required fields (title, company, description).",
		}
	}

	if in.ExperienceRequired < 0 {
		return &ValidationError{
			Resource: jobsResource,
			Fields:   []string{"experience_required"},
			Message:  "Years of experience must not be negative.",
		}
	}

	return nil
}

// normalized returns a copy with defaults applied and nil lists replaced by empty ones.
func (in JobInput) normalized() JobInput {
	if strings.TrimSpace(in.JobType) == "" {
		in.JobType = DefaultJobType
	}
	if in.SkillsRequired == nil {
		in.SkillsRequired = []string{}
	}
	if in.Requirements == nil {
		in.Requirements = []string{}
	}
	if in.Qualifications == nil {
		in.Qualifications = []string{}
	}
	return in
}

// Input converts a stored job back into an editable payload.
func (j *Job) Input() JobInput {
	return JobInput{
		Title:              j.Title,
		Company:            j.Company,
		Description:        j.Description,
		Location:           j.Location,
		JobType:            j.JobType,
		ExperienceRequired: j.ExperienceRequired,
		SalaryRange:        j.SalaryRange,
		SkillsRequired:     append([]string(nil), j.SkillsRequired...),
		Requirements:       append([]string(nil), j.Requirements...),
		Qualifications:     append([]string(nil), j.Qualifications...),
	}
}

func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	items, err := c.getItems(ctx, fmt.Sprintf("%s%s", c.APIURL, jobsPath))
	if err != nil {
		return nil, &FetchError{Resource: jobsResource, Err: err}
	}

	var jobs []Job
	if err = decodeItems(items, &jobs); err != nil {
		return nil, &FetchError{Resource: jobsResource, Err: fmt.Errorf("decode jobs: %w", err)}
	}

	if jobs == nil {
		jobs = []Job{}
	}

	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (Job, error) {
	var job Job
	if strings.TrimSpace(id) == "" {
		return job, &ValidationError{Resource: jobsResource, Fields: []string{"id"}, Message: "job id is required"}
	}

	if err := c.getJSON(ctx, c.jobURL(id), &job); err != nil {
		return job, &FetchError{Resource: jobsResource, ID: id, Err: err}
	}

	return job, nil
}

// CreateJob validates the payload locally and only then issues POST /jobs.
func (c *Client) CreateJob(ctx context.Context, in JobInput) (Job, error) {
	var job Job
	if err := in.Validate(); err != nil {
		return job, err
	}

	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("%s%s", c.APIURL, jobsPath), in.normalized(), http.StatusCreated, &job)
	if err != nil {
		return job, &MutationError{Op: "create", Resource: jobsResource, Err: err}
	}

	return job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, in JobInput) (Job, error) {
	var job Job
	if strings.TrimSpace(id) == "" {
		return job, &ValidationError{Resource: jobsResource, Fields: []string{"id"}, Message: "job id is required"}
	}
	if err := in.Validate(); err != nil {
		return job, err
	}

	if err := c.sendJSON(ctx, http.MethodPut, c.jobURL(id), in.normalized(), http.StatusOK, &job); err != nil {
		return job, &MutationError{Op: "update", Resource: jobsResource, ID: id, Err: err}
	}

	return job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Resource: jobsResource, Fields: []string{"id"}, Message: "job id is required"}
	}

	if err := c.deleteResource(ctx, c.jobURL(id)); err != nil {
		return &MutationError{Op: "delete", Resource: jobsResource, ID: id, Err: err}
	}

	return nil
}

func (c *Client) jobURL(id string) string {
	return fmt.Sprintf("%s%s/%s", c.APIURL, jobsPath, url.PathEscape(id))
}
