// Package matching runs candidate matching for a job and turns the raw
// server results into ranked, display-ready views.
package matching

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/recruitapi"
)

const DefaultMissingSkillCap = 3

// Calculator is the remote side of matching.
type Calculator interface {
	CalculateMatches(ctx context.Context, req recruitapi.MatchRequest) ([]recruitapi.Match, error)
	MatchesForJob(ctx context.Context, jobID string) ([]recruitapi.Match, error)
}

type Config struct {
	MissingSkillCap int `mapstructure:"missing-skill-cap"`
}

func (c Config) missingSkillCap() int {
	if c.MissingSkillCap <= 0 {
		return DefaultMissingSkillCap
	}
	return c.MissingSkillCap
}

// Pipeline holds the result of the last calculation. Every call replaces it
// wholesale; a failed call clears it.
type Pipeline struct {
	calculator Calculator
	config     Config
	logger     *zap.Logger

	mu      sync.Mutex
	jobID   string
	matches []recruitapi.Match
	views   []View
}

func NewPipeline(calculator Calculator, cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		calculator: calculator,
		config:     cfg,
		logger:     logger,
	}
}

// Calculate scores resumeIDs (all resumes when empty) against jobID and joins
// the result with resumes for display.
func (p *Pipeline) Calculate(ctx context.Context, jobID string, resumeIDs []string, resumes []recruitapi.Resume) ([]View, error) {
	matches, err := p.calculator.CalculateMatches(ctx, recruitapi.MatchRequest{JobID: jobID, ResumeIDs: resumeIDs})
	return p.apply(jobID, matches, resumes, err, "calculate")
}

// History loads the matches stored for jobID.
func (p *Pipeline) History(ctx context.Context, jobID string, resumes []recruitapi.Resume) ([]View, error) {
	matches, err := p.calculator.MatchesForJob(ctx, jobID)
	return p.apply(jobID, matches, resumes, err, "history")
}

func (p *Pipeline) apply(jobID string, matches []recruitapi.Match, resumes []recruitapi.Resume, err error, op string) ([]View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jobID = jobID
	if err != nil {
		p.matches = nil
		p.views = nil
		p.logger.Warn("matching failed", zap.String("op", op), zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}

	p.matches = matches
	p.views = Project(matches, resumes, p.config)
	p.logger.Info("matches loaded", zap.String("op", op), zap.String("job_id", jobID), zap.Int("count", len(matches)))

	return p.viewsLocked(), nil
}

// Views returns a copy of the current result.
func (p *Pipeline) Views() []View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewsLocked()
}

func (p *Pipeline) viewsLocked() []View {
	views := make([]View, len(p.views))
	copy(views, p.views)
	return views
}

// Results returns the raw matches of the current result.
func (p *Pipeline) Results() (string, []recruitapi.Match) {
	p.mu.Lock()
	defer p.mu.Unlock()

	matches := make([]recruitapi.Match, len(p.matches))
	copy(matches, p.matches)
	return p.jobID, matches
}
