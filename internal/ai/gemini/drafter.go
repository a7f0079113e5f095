package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/ai"
	"github.com/spigell/hire-assistant/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction   = "You are a recruiting assistant. Follow the template and answer with JSON only."
	defaultMaxLogLength = 200
)

// Drafter writes outreach notes for ranked candidates.
type Drafter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewDrafter(generator contentGenerator, log *zap.Logger, maxLogLength int) *Drafter {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Drafter{
		generator: generator,
		logger:    logger.WithAI(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (d *Drafter) Draft(ctx context.Context, candidate ai.Candidate) (*ai.Outreach, error) {
	if strings.TrimSpace(candidate.Job.ID) == "" {
		return nil, errors.New("job is required")
	}
	if !candidate.Match.Known {
		return nil, fmt.Errorf("resume %s is not known locally", candidate.Match.ResumeID)
	}

	jobJSON, err := json.MarshalIndent(map[string]any{
		"title":       candidate.Job.Title,
		"company":     candidate.Job.Company,
		"location":    candidate.Job.Location,
		"job_type":    candidate.Job.JobType,
		"description": candidate.Job.Description,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	matched := make([]string, 0, len(candidate.Match.Matching))
	for _, tag := range candidate.Match.Matching {
		matched = append(matched, tag.Label)
	}

	candidateJSON, err := json.MarshalIndent(map[string]any{
		"name":            candidate.Resume.Name,
		"summary":         candidate.Resume.Summary,
		"skills":          candidate.Resume.Skills,
		"matching_skills": matched,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate payload: %w", err)
	}

	prompt := buildPrompt(string(jobJSON), string(candidateJSON))

	d.logger.Debug("gemini generate content request",
		zap.String("job_id", candidate.Job.ID),
		zap.String("resume_id", candidate.Match.ResumeID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, d.maxLogLen)),
	)

	raw, err := d.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("gemini generate content response",
		zap.String("resume_id", candidate.Match.ResumeID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, d.maxLogLen)),
	)

	outreach, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	outreach.Raw = raw

	return outreach, nil
}

func buildPrompt(jobJSON, candidateJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job:\n{{JOB_JSON}}\n\nCandidate:\n{{CANDIDATE_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_JSON}}", jobJSON)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_JSON}}", candidateJSON)
	return prompt
}

func parseResponse(raw string) (*ai.Outreach, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	outreach := &ai.Outreach{
		Subject: coerceString(data["subject"]),
		Message: coerceString(data["message"]),
	}
	if outreach.Message == "" {
		return nil, errors.New("gemini response has no message")
	}

	return outreach, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
