package recruitapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	matchesPath      = "/matches"
	matchesResource  = "matches"
	calculateSubpath = "/calculate"
)

type Match struct {
	ID        string       `json:"id,omitempty"`
	JobID     string       `json:"job_id"`
	ResumeID  string       `json:"resume_id"`
	Score     float64      `json:"score"`
	Rank      int          `json:"rank,omitempty"`
	Details   MatchDetails `json:"details"`
	CreatedAt string       `json:"created_at,omitempty"`
}

type MatchDetails struct {
	VectorSimilarity float64  `json:"vector_similarity"`
	SkillsMatchRatio float64  `json:"skills_match_ratio"`
	MatchingSkills   []string `json:"matching_skills"`
	MissingSkills    []string `json:"missing_skills"`
}

// MatchRequest asks the server to score resumes against a job.
// A nil ResumeIDs is sent as null, meaning every stored resume.
type MatchRequest struct {
	JobID     string   `json:"job_id"`
	ResumeIDs []string `json:"resume_ids"`
}

// CalculateMatches runs the remote matching. The result keeps the server order.
func (c *Client) CalculateMatches(ctx context.Context, req MatchRequest) ([]Match, error) {
	if strings.TrimSpace(req.JobID) == "" {
		return nil, &ValidationError{Resource: matchesResource, Fields: []string{"job_id"}, Message: "Please select a job to match against."}
	}

	if len(req.ResumeIDs) == 0 {
		req.ResumeIDs = nil
	}

	var matches []Match
	target := fmt.Sprintf("%s%s%s", c.APIURL, matchesPath, calculateSubpath)
	if err := c.sendJSON(ctx, http.MethodPost, target, req, http.StatusOK, &matches); err != nil {
		return nil, &MatchComputationError{JobID: req.JobID, Err: err}
	}

	if matches == nil {
		matches = []Match{}
	}

	return matches, nil
}

func (c *Client) MatchesForJob(ctx context.Context, jobID string) ([]Match, error) {
	return c.listMatches(ctx, "job", jobID)
}

func (c *Client) MatchesForResume(ctx context.Context, resumeID string) ([]Match, error) {
	return c.listMatches(ctx, "resume", resumeID)
}

func (c *Client) listMatches(ctx context.Context, kind, id string) ([]Match, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Resource: matchesResource, Fields: []string{kind + "_id"}, Message: kind + " id is required"}
	}

	target := fmt.Sprintf("%s%s/%s/%s", c.APIURL, matchesPath, kind, url.PathEscape(id))
	items, err := c.getItems(ctx, target)
	if err != nil {
		return nil, &FetchError{Resource: matchesResource, ID: id, Err: err}
	}

	var matches []Match
	if err = decodeItems(items, &matches); err != nil {
		return nil, &FetchError{Resource: matchesResource, ID: id, Err: fmt.Errorf("decode matches: %w", err)}
	}

	if matches == nil {
		matches = []Match{}
	}

	return matches, nil
}
