package pages

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/ai"
	"github.com/spigell/hire-assistant/internal/matching"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/resource"
)

const (
	CalculateFailedMessage = "Error calculating matches. Please try again."
	LoadFailedMessage      = "Error loading jobs and resumes. Candidates may be shown as unknown."
)

// MatchesPage loads jobs and resumes once and runs matching against them.
type MatchesPage struct {
	Jobs     *resource.Collection[recruitapi.Job]
	Resumes  *resource.Collection[recruitapi.Resume]
	Pipeline *matching.Pipeline

	drafter ai.Drafter
	logger  *zap.Logger
	message string
}

// NewMatchesPage wires the page. drafter may be nil when no AI provider is configured.
func NewMatchesPage(jobs resource.Source[recruitapi.Job], resumes resource.Source[recruitapi.Resume], calculator matching.Calculator, cfg matching.Config, drafter ai.Drafter, logger *zap.Logger) *MatchesPage {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatchesPage{
		Jobs:     resource.NewCollection("jobs", jobs, logger),
		Resumes:  resource.NewCollection("resumes", resumes, logger),
		Pipeline: matching.NewPipeline(calculator, cfg, logger),
		drafter:  drafter,
		logger:   logger,
	}
}

// Mount fetches the jobs to choose from and the resumes used for names.
// Both are fetched even if one fails. Matching still works without them and
// unresolved resumes are shown as unknown candidates.
func (p *MatchesPage) Mount(ctx context.Context) error {
	_, jobsErr := p.Jobs.Refresh(ctx)
	_, resumesErr := p.Resumes.Refresh(ctx)

	err := errors.Join(jobsErr, resumesErr)
	if err != nil {
		p.logger.Warn("match page loaded partially", zap.Error(err))
	}
	p.message = recruitapi.UserMessage(err, LoadFailedMessage)

	return err
}

func (p *MatchesPage) Calculate(ctx context.Context, jobID string, resumeIDs []string) ([]matching.View, error) {
	views, err := p.Pipeline.Calculate(ctx, jobID, resumeIDs, p.Resumes.Items())
	p.setMessage(err)
	return views, err
}

func (p *MatchesPage) History(ctx context.Context, jobID string) ([]matching.View, error) {
	views, err := p.Pipeline.History(ctx, jobID, p.Resumes.Items())
	p.setMessage(err)
	return views, err
}

func (p *MatchesPage) setMessage(err error) {
	p.message = recruitapi.UserMessage(err, CalculateFailedMessage)
}

// Message is the inline error of the last run, empty on success.
func (p *MatchesPage) Message() string { return p.message }

func (p *MatchesPage) CanDraft() bool { return p.drafter != nil }

// Draft asks the AI provider for an outreach note to the candidate behind view.
func (p *MatchesPage) Draft(ctx context.Context, jobID string, view matching.View) (*ai.Outreach, error) {
	if p.drafter == nil {
		return nil, fmt.Errorf("no ai provider configured")
	}

	job, ok := find(p.Jobs.Items(), func(j recruitapi.Job) bool { return j.ID == jobID })
	if !ok {
		return nil, fmt.Errorf("job %s is not loaded", jobID)
	}
	resume, ok := find(p.Resumes.Items(), func(r recruitapi.Resume) bool { return r.ID == view.ResumeID })
	if !ok {
		return nil, fmt.Errorf("resume %s is not loaded", view.ResumeID)
	}

	return p.drafter.Draft(ctx, ai.Candidate{Job: job, Resume: resume, Match: view})
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
