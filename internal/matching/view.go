package matching

import (
	"math"

	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/taglist"
)

const UnknownCandidate = "Unknown candidate"

type TagKind string

const (
	TagMatching TagKind = "matching"
	TagMissing  TagKind = "missing"
	TagSummary  TagKind = "summary"
)

type Tag struct {
	Label string
	Kind  TagKind
}

// View is one ranked candidate as it is shown.
type View struct {
	Rank             int
	ResumeID         string
	CandidateName    string
	Email            string
	Known            bool
	ScorePercentage  int
	VectorSimilarity int
	SkillsMatchRatio int
	Matching         []Tag
	Missing          []Tag
}

// Project joins matches with resumes. Server order is kept as is.
func Project(matches []recruitapi.Match, resumes []recruitapi.Resume, cfg Config) []View {
	views := make([]View, 0, len(matches))

	for i, m := range matches {
		v := View{
			Rank:             m.Rank,
			ResumeID:         m.ResumeID,
			CandidateName:    UnknownCandidate,
			ScorePercentage:  ScorePercentage(m.Score),
			VectorSimilarity: ScorePercentage(m.Details.VectorSimilarity),
			SkillsMatchRatio: ScorePercentage(m.Details.SkillsMatchRatio),
			Matching:         tags(m.Details.MatchingSkills, TagMatching),
		}
		if v.Rank == 0 {
			v.Rank = i + 1
		}

		if resume, ok := findResume(resumes, m.ResumeID); ok {
			v.CandidateName = resume.Name
			v.Email = resume.Email
			v.Known = true
		}

		shown, hidden := taglist.Truncate(m.Details.MissingSkills, cfg.missingSkillCap())
		v.Missing = tags(shown, TagMissing)
		if hidden > 0 {
			v.Missing = append(v.Missing, Tag{Label: taglist.MoreLabel(hidden), Kind: TagSummary})
		}

		views = append(views, v)
	}

	return views
}

func findResume(resumes []recruitapi.Resume, id string) (recruitapi.Resume, bool) {
	for _, r := range resumes {
		if r.ID == id {
			return r, true
		}
	}
	return recruitapi.Resume{}, false
}

func tags(labels []string, kind TagKind) []Tag {
	out := make([]Tag, 0, len(labels))
	for _, l := range labels {
		out = append(out, Tag{Label: l, Kind: kind})
	}
	return out
}

// ScorePercentage converts a score in [0,1] to a whole percentage.
func ScorePercentage(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	pct := int(math.Round(score * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
