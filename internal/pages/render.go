package pages

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/hire-assistant/internal/jobform"
	"github.com/spigell/hire-assistant/internal/listview"
	"github.com/spigell/hire-assistant/internal/matching"
	"github.com/spigell/hire-assistant/internal/pagination"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/taglist"
)

const (
	JobSkillCap        = 5
	noLocation         = "No location specified"
	notAvailable       = "N/A"
	none               = "None"
	noEmail            = "No email"
	noPhone            = "No phone"
	tagSeparator       = ", "
	missingTagPrefix   = "-"
	matchingTagPrefix  = "+"
	detailIndentPrefix = "  - "
)

// JobLabel is the one-line summary used in lists and selects.
func JobLabel(job recruitapi.Job) string {
	parts := []string{job.Title, job.Company, or(job.Location, noLocation), or(job.JobType, recruitapi.DefaultJobType)}
	if job.ExperienceRequired > 0 {
		parts = append(parts, fmt.Sprintf("%d+ years", job.ExperienceRequired))
	}
	return strings.Join(parts, " / ")
}

// JobSkills renders the first JobSkillCap skills and a "+N more" tag.
func JobSkills(job recruitapi.Job) string {
	shown, hidden := taglist.Truncate(job.SkillsRequired, JobSkillCap)
	tags := append([]string(nil), shown...)
	if more := taglist.MoreLabel(hidden); more != "" {
		tags = append(tags, more)
	}
	return strings.Join(tags, tagSeparator)
}

func ResumeLabel(resume recruitapi.Resume) string {
	return strings.Join([]string{
		resume.Name,
		or(resume.Email, noEmail),
		or(resume.Phone, noPhone),
		fmt.Sprintf("%d experience entries", len(resume.Experience)),
		fmt.Sprintf("%d education entries", len(resume.Education)),
	}, " / ")
}

func RenderJobs(w io.Writer, state listview.State[recruitapi.Job]) {
	renderHeader(w, state.Loading, state.Error, state.Empty)
	for _, job := range state.Window.Items {
		fmt.Fprintf(w, "%s  %s\n", job.ID, JobLabel(job))
		if skills := JobSkills(job); skills != "" {
			fmt.Fprintf(w, "    %s\n", skills)
		}
	}
	renderPager(w, state.Window.CurrentPage, state.Window.TotalPages)
}

func RenderResumes(w io.Writer, state listview.State[recruitapi.Resume]) {
	renderHeader(w, state.Loading, state.Error, state.Empty)
	for _, resume := range state.Window.Items {
		fmt.Fprintf(w, "%s  %s\n", resume.ID, ResumeLabel(resume))
	}
	renderPager(w, state.Window.CurrentPage, state.Window.TotalPages)
}

func renderHeader(w io.Writer, loading bool, errMessage, empty string) {
	if loading {
		fmt.Fprintln(w, "Loading...")
	}
	if errMessage != "" {
		fmt.Fprintf(w, "Error: %s\n", errMessage)
	}
	if empty != "" {
		fmt.Fprintln(w, empty)
	}
}

// renderPager prints every page number and marks the current one.
// Nothing is printed for a single page.
func renderPager(w io.Writer, current, total int) {
	if total <= 1 {
		return
	}

	pages := pagination.Pages(total)
	labels := make([]string, 0, len(pages))
	for _, p := range pages {
		if p == current {
			labels = append(labels, fmt.Sprintf("[%d]", p))
			continue
		}
		labels = append(labels, fmt.Sprintf("%d", p))
	}

	fmt.Fprintf(w, "Page %d of %d: %s\n", current, total, strings.Join(labels, " "))
}

func RenderJobDetail(w io.Writer, job recruitapi.Job) {
	fmt.Fprintf(w, "%s\n", job.Title)
	fmt.Fprintf(w, "Company: %s\n", job.Company)
	fmt.Fprintf(w, "Description: %s\n", job.Description)
	fmt.Fprintf(w, "Location: %s\n", or(job.Location, notAvailable))
	fmt.Fprintf(w, "Job Type: %s\n", or(job.JobType, notAvailable))
	fmt.Fprintf(w, "Experience Required: %d years\n", job.ExperienceRequired)
	fmt.Fprintf(w, "Salary Range: %s\n", or(job.SalaryRange, notAvailable))
	renderList(w, "Skills Required", job.SkillsRequired)
	renderList(w, "Requirements", job.Requirements)
	renderList(w, "Qualifications", job.Qualifications)
}

func RenderResumeDetail(w io.Writer, resume recruitapi.Resume) {
	fmt.Fprintf(w, "Name: %s\n", resume.Name)
	fmt.Fprintf(w, "Email: %s\n", resume.Email)
	fmt.Fprintf(w, "Phone: %s\n", resume.Phone)
	fmt.Fprintf(w, "Summary: %s\n", resume.Summary)
	renderList(w, "Skills", resume.Skills)
	renderList(w, "Education", records(resume.Education))
	renderList(w, "Experience", records(resume.Experience))
}

func records[T any](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			out = append(out, fmt.Sprintf("%+v", item))
			continue
		}
		out = append(out, string(data))
	}
	return out
}

func renderList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "%s: %s\n", title, none)
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "%s%s\n", detailIndentPrefix, item)
	}
}

func RenderMatches(w io.Writer, views []matching.View) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return
	}

	for _, v := range views {
		name := v.CandidateName
		if !v.Known {
			name = fmt.Sprintf("%s (%s)", name, v.ResumeID)
		}
		fmt.Fprintf(w, "#%d %s  %d%%\n", v.Rank, name, v.ScorePercentage)
		if v.Email != "" {
			fmt.Fprintf(w, "    %s\n", v.Email)
		}
		fmt.Fprintf(w, "    vector similarity %d%%, skills match %d%%\n", v.VectorSimilarity, v.SkillsMatchRatio)
		if len(v.Matching) > 0 {
			fmt.Fprintf(w, "    matching: %s\n", renderTags(v.Matching))
		}
		if len(v.Missing) > 0 {
			fmt.Fprintf(w, "    missing: %s\n", renderTags(v.Missing))
		}
	}
}

func renderTags(tags []matching.Tag) string {
	labels := make([]string, 0, len(tags))
	for _, t := range tags {
		switch t.Kind {
		case matching.TagMatching:
			labels = append(labels, matchingTagPrefix+t.Label)
		case matching.TagMissing:
			labels = append(labels, missingTagPrefix+t.Label)
		default:
			labels = append(labels, t.Label)
		}
	}
	return strings.Join(labels, tagSeparator)
}

func RenderAlert(w io.Writer, alert *jobform.Alert) {
	if alert == nil {
		return
	}
	if alert.Kind == jobform.AlertError {
		fmt.Fprintf(w, "Error: %s\n", alert.Message)
		return
	}
	fmt.Fprintln(w, alert.Message)
}

func or(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// RenderResumeMatches lists the stored matches of one resume by job.
func RenderResumeMatches(w io.Writer, matches []recruitapi.Match, jobs []recruitapi.Job) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return
	}

	for _, m := range matches {
		label := m.JobID
		if job, ok := find(jobs, func(j recruitapi.Job) bool { return j.ID == m.JobID }); ok {
			label = fmt.Sprintf("%s (%s)", JobLabel(job), job.ID)
		}
		fmt.Fprintf(w, "%s  %d%%\n", label, matching.ScorePercentage(m.Score))
	}
}
