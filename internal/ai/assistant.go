package ai

import (
	"context"

	"github.com/spigell/hire-assistant/internal/matching"
	"github.com/spigell/hire-assistant/internal/recruitapi"
)

// Outreach is a short note to a shortlisted candidate.
type Outreach struct {
	Subject string
	Message string
	Raw     string
}

// Candidate is everything a drafter knows about one ranked match.
type Candidate struct {
	Job    recruitapi.Job
	Resume recruitapi.Resume
	Match  matching.View
}

type Drafter interface {
	Draft(ctx context.Context, candidate Candidate) (*Outreach, error)
}
