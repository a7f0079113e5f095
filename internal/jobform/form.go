// Package jobform holds the state of the job posting form.
package jobform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/refresh"
	"github.com/spigell/hire-assistant/internal/resource"
	"github.com/spigell/hire-assistant/internal/taglist"
)

type Field string

const (
	Title          Field = "title"
	Company        Field = "company"
	Description    Field = "description"
	Location       Field = "location"
	JobType        Field = "job_type"
	Experience     Field = "experience_required"
	SalaryRange    Field = "salary_range"
	Skills         Field = "skills_required"
	Requirements   Field = "requirements"
	Qualifications Field = "qualifications"
)

const (
	CreatedMessage      = "Job posting created successfully!"
	CreateFailedMessage = "Error creating job posting. Please try again."
)

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

type Alert struct {
	Kind    AlertKind
	Message string
}

// Form keeps the scalar fields as typed and one tag editor per list field.
// The three editors never share state.
type Form struct {
	logger *zap.Logger

	title       string
	company     string
	description string
	location    string
	jobType     string
	experience  string
	salaryRange string

	skills         *taglist.Editor
	requirements   *taglist.Editor
	qualifications *taglist.Editor

	alert *Alert
}

func New(logger *zap.Logger, opts ...taglist.Option) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Form{
		logger:         logger,
		skills:         taglist.New(string(Skills), opts...),
		requirements:   taglist.New(string(Requirements), opts...),
		qualifications: taglist.New(string(Qualifications), opts...),
	}
	f.Reset()

	return f
}

// Editor returns the tag editor behind field, or nil for scalar fields.
func (f *Form) Editor(field Field) *taglist.Editor {
	switch field {
	case Skills:
		return f.skills
	case Requirements:
		return f.requirements
	case Qualifications:
		return f.qualifications
	}
	return nil
}

// Set writes a scalar field or the input buffer of a tag field.
func (f *Form) Set(field Field, value string) error {
	if editor := f.Editor(field); editor != nil {
		editor.SetInput(value)
		return nil
	}

	switch field {
	case Title:
		f.title = value
	case Company:
		f.company = value
	case Description:
		f.description = value
	case Location:
		f.location = value
	case JobType:
		f.jobType = value
	case Experience:
		f.experience = value
	case SalaryRange:
		f.salaryRange = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}

	return nil
}

// Enter handles the enter key on field. On a tag field it commits that editor
// only and returns false: the form must not be submitted. On any other field it
// returns true.
func (f *Form) Enter(field Field) bool {
	if editor := f.Editor(field); editor != nil {
		editor.Commit()
		return false
	}
	return true
}

// Payload builds the create request from the current state.
func (f *Form) Payload() (recruitapi.JobInput, error) {
	in := recruitapi.JobInput{
		Title:          strings.TrimSpace(f.title),
		Company:        strings.TrimSpace(f.company),
		Description:    strings.TrimSpace(f.description),
		Location:       strings.TrimSpace(f.location),
		JobType:        strings.TrimSpace(f.jobType),
		SalaryRange:    strings.TrimSpace(f.salaryRange),
		SkillsRequired: f.skills.Items(),
		Requirements:   f.requirements.Items(),
		Qualifications: f.qualifications.Items(),
	}

	if exp := strings.TrimSpace(f.experience); exp != "" {
		years, err := strconv.Atoi(exp)
		if err != nil {
			return in, &recruitapi.ValidationError{
				Resource: "jobs",
				Fields:   []string{string(Experience)},
				Message:  "Years of experience must be a whole number.",
			}
		}
		in.ExperienceRequired = years
	}

	return in, nil
}

// Submit validates and creates the job. On success the form is cleared and
// coordinator is bumped so every list on the page refetches. On failure the
// form keeps what was typed and Alert holds the message to show.
func (f *Form) Submit(ctx context.Context, creator resource.Creator[recruitapi.JobInput, recruitapi.Job], coordinator *refresh.Coordinator) (recruitapi.Job, error) {
	in, err := f.Payload()
	if err != nil {
		f.fail(err)
		return recruitapi.Job{}, err
	}

	job, err := resource.Create(ctx, creator, in)
	if err != nil {
		f.fail(err)
		return job, err
	}

	f.logger.Info("job posting created", zap.String("id", job.ID), zap.String("title", job.Title))

	f.Reset()
	f.alert = &Alert{Kind: AlertSuccess, Message: CreatedMessage}

	if coordinator != nil {
		coordinator.Bump(ctx, "job created")
	}

	return job, nil
}

func (f *Form) fail(err error) {
	f.logger.Warn("job posting not created", zap.Error(err))
	f.alert = &Alert{Kind: AlertError, Message: recruitapi.UserMessage(err, CreateFailedMessage)}
}

// Alert returns the outcome of the last submit, or nil.
func (f *Form) Alert() *Alert { return f.alert }

func (f *Form) DismissAlert() { f.alert = nil }

// Reset clears every field. The job type goes back to its default.
func (f *Form) Reset() {
	f.title = ""
	f.company = ""
	f.description = ""
	f.location = ""
	f.jobType = recruitapi.DefaultJobType
	f.experience = ""
	f.salaryRange = ""
	f.skills.Reset()
	f.requirements.Reset()
	f.qualifications.Reset()
}

// Load fills the form from a stored job, for editing.
func (f *Form) Load(job recruitapi.Job) {
	f.Reset()
	f.title = job.Title
	f.company = job.Company
	f.description = job.Description
	f.location = job.Location
	if job.JobType != "" {
		f.jobType = job.JobType
	}
	f.experience = strconv.Itoa(job.ExperienceRequired)
	f.salaryRange = job.SalaryRange
	f.skills.Load(job.SkillsRequired)
	f.requirements.Load(job.Requirements)
	f.qualifications.Load(job.Qualifications)
}
