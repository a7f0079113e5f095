package pages

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spigell/hire-assistant/internal/ai"
	"github.com/spigell/hire-assistant/internal/jobform"
	"github.com/spigell/hire-assistant/internal/matching"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/resource"
)

func confirm(answer bool) resource.ConfirmFunc {
	return func(context.Context, string) (bool, error) { return answer, nil }
}

func TestCreateJobOnEmptyList(t *testing.T) {
	api, client := newFakeAPI(t)
	page := NewJobsPage(client.Jobs(), nil, 5)
	defer page.Close()

	ctx := context.Background()
	if err := page.Mount(ctx); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if state := page.List.State(); state.Empty != JobMessages.Empty {
		t.Fatalf("expected empty state, got %+v", state)
	}

	for field, value := range map[jobform.Field]string{
		jobform.Title:       "Engineer",
		jobform.Company:     "Acme",
		jobform.Description: "Build things",
	} {
		if err := page.Form.Set(field, value); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}

	if _, err := page.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	state := page.List.State()
	if len(state.Window.Items) != 1 || state.Window.TotalPages != 1 {
		t.Fatalf("expected one job on one page, got %+v", state.Window)
	}
	if state.Window.Items[0].Title != "Engineer" {
		t.Fatalf("unexpected job %+v", state.Window.Items[0])
	}
	if api.count("GET", "/jobs") != 2 {
		t.Fatalf("expected mount fetch and one refetch, got %d", api.count("GET", "/jobs"))
	}
	if page.Form.Alert().Message != jobform.CreatedMessage {
		t.Fatalf("unexpected alert %+v", page.Form.Alert())
	}
}

func TestCreateJobValidationSkipsNetwork(t *testing.T) {
	api, client := newFakeAPI(t)
	page := NewJobsPage(client.Jobs(), nil, 5)
	_ = page.Mount(context.Background())

	if _, err := page.Submit(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}
	if api.count("POST", "/jobs") != 0 {
		t.Fatalf("invalid form reached the api")
	}
}

func TestTwelveJobsPaginate(t *testing.T) {
	api, client := newFakeAPI(t)
	api.seed(func(f *fakeAPI) {
		for i := 1; i <= 12; i++ {
			f.jobs = append(f.jobs, recruitapi.Job{ID: fmt.Sprintf("j%d", i), Title: fmt.Sprintf("Job %d", i)})
		}
	})

	page := NewJobsPage(client.Jobs(), nil, 5)
	_ = page.Mount(context.Background())

	if pages := page.List.Pages(); len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %v", pages)
	}
	if !page.List.SetPage(3) {
		t.Fatalf("page 3 rejected")
	}
	if items := page.List.State().Window.Items; len(items) != 2 {
		t.Fatalf("expected 2 jobs on page 3, got %d", len(items))
	}
	if page.List.SetPage(4) {
		t.Fatalf("page 4 accepted")
	}
}

func TestDeleteJob(t *testing.T) {
	tests := []struct {
		name        string
		answer      bool
		wantDeletes int
		wantJobs    int
	}{
		{name: "confirmed", answer: true, wantDeletes: 1, wantJobs: 1},
		{name: "cancelled", answer: false, wantDeletes: 0, wantJobs: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, client := newFakeAPI(t)
			api.seed(func(f *fakeAPI) {
				f.jobs = []recruitapi.Job{{ID: "j1", Title: "One"}, {ID: "j2", Title: "Two"}}
			})

			page := NewJobsPage(client.Jobs(), nil, 5)
			_ = page.Mount(context.Background())

			removed, err := page.Delete(context.Background(), "j1", confirm(tt.answer))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if removed != tt.answer {
				t.Fatalf("removed = %v", removed)
			}
			if got := api.count("DELETE", "/jobs/"); got != tt.wantDeletes {
				t.Fatalf("expected %d DELETE requests, got %d", tt.wantDeletes, got)
			}

			items := page.List.Items()
			if len(items) != tt.wantJobs {
				t.Fatalf("expected %d jobs, got %d", tt.wantJobs, len(items))
			}
			if tt.answer {
				for _, job := range items {
					if job.ID == "j1" {
						t.Fatalf("deleted job still listed")
					}
				}
			}
		})
	}
}

func TestUploadResume(t *testing.T) {
	_, client := newFakeAPI(t)
	page := NewResumesPage(client.Resumes(), nil, 5)
	_ = page.Mount(context.Background())

	_, err := page.Upload(context.Background(), recruitapi.ResumeUpload{})
	if err == nil || page.Alert().Message != "Please select a file to upload." {
		t.Fatalf("expected missing file alert, got %v %+v", err, page.Alert())
	}

	resume, err := page.Upload(context.Background(), recruitapi.ResumeUpload{
		Filename: "jane.json",
		Content:  strings.NewReader(`{"name":"Jane"}`),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if page.Alert().Message != UploadedMessage {
		t.Fatalf("unexpected alert %+v", page.Alert())
	}

	items := page.List.Items()
	if len(items) != 1 || items[0].ID != resume.ID {
		t.Fatalf("uploaded resume not listed: %+v", items)
	}
}

type stubDrafter struct {
	got ai.Candidate
}

func (s *stubDrafter) Draft(ctx context.Context, c ai.Candidate) (*ai.Outreach, error) {
	s.got = c
	return &ai.Outreach{Subject: "Hi", Message: "Hello " + c.Resume.Name}, nil
}

func TestCalculateMatches(t *testing.T) {
	api, client := newFakeAPI(t)
	api.seed(func(f *fakeAPI) {
		f.jobs = []recruitapi.Job{{ID: "j1", Title: "Go Developer", Company: "Acme"}}
		f.resumes = []recruitapi.Resume{{ID: "r1", Name: "Jane Doe"}}
		f.matches = []recruitapi.Match{{
			JobID:    "j1",
			ResumeID: "r1",
			Score:    0.87,
			Rank:     1,
			Details: recruitapi.MatchDetails{
				MatchingSkills: []string{"Go"},
				MissingSkills:  []string{"Kubernetes", "Terraform", "AWS", "Rust"},
			},
		}}
	})

	drafter := &stubDrafter{}
	page := NewMatchesPage(client.Jobs(), client.Resumes(), client, matching.Config{}, drafter, nil)
	if err := page.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}

	views, err := page.Calculate(context.Background(), "j1", nil)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one match, got %d", len(views))
	}

	v := views[0]
	if v.ScorePercentage != 87 || v.CandidateName != "Jane Doe" {
		t.Fatalf("unexpected view %+v", v)
	}

	missing, summary := 0, ""
	for _, tag := range v.Missing {
		switch tag.Kind {
		case matching.TagMissing:
			missing++
		case matching.TagSummary:
			summary = tag.Label
		}
	}
	if missing != 3 || summary != "+1 more" {
		t.Fatalf("unexpected missing tags %+v", v.Missing)
	}

	outreach, err := page.Draft(context.Background(), "j1", v)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if outreach.Message != "Hello Jane Doe" || drafter.got.Job.Title != "Go Developer" {
		t.Fatalf("unexpected draft %+v for %+v", outreach, drafter.got)
	}
}

func TestCalculateFailureClearsResults(t *testing.T) {
	api, client := newFakeAPI(t)
	api.seed(func(f *fakeAPI) {
		f.matches = []recruitapi.Match{{JobID: "j1", ResumeID: "r1", Score: 0.5}}
	})

	page := NewMatchesPage(client.Jobs(), client.Resumes(), client, matching.Config{}, nil, nil)
	_ = page.Mount(context.Background())

	if _, err := page.Calculate(context.Background(), "j1", nil); err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if _, err := page.Calculate(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error without a job")
	}
	if len(page.Pipeline.Views()) != 0 {
		t.Fatalf("stale results kept")
	}
	if page.Message() != "Please select a job to match against." {
		t.Fatalf("unexpected message %q", page.Message())
	}
	if page.CanDraft() {
		t.Fatalf("drafting enabled without a drafter")
	}
}

func TestMatchHistory(t *testing.T) {
	api, client := newFakeAPI(t)
	api.seed(func(f *fakeAPI) {
		f.matches = []recruitapi.Match{{JobID: "j1", ResumeID: "gone", Score: 0.3}}
	})

	page := NewMatchesPage(client.Jobs(), client.Resumes(), client, matching.Config{}, nil, nil)
	_ = page.Mount(context.Background())

	views, err := page.History(context.Background(), "j1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if views[0].CandidateName != matching.UnknownCandidate {
		t.Fatalf("expected placeholder, got %+v", views[0])
	}

	var buf bytes.Buffer
	RenderMatches(&buf, views)
	if !strings.Contains(buf.String(), "Unknown candidate (gone)") {
		t.Fatalf("raw id not shown:\n%s", buf.String())
	}
}

type failingJobs struct{}

func (failingJobs) List(context.Context) ([]recruitapi.Job, error) {
	return nil, errors.New("connection reset")
}

func (failingJobs) Get(context.Context, string) (recruitapi.Job, error) {
	return recruitapi.Job{}, errors.New("connection reset")
}

func (failingJobs) Delete(context.Context, string) error {
	return errors.New("connection reset")
}

func TestCalculateWhenJobsFailToLoad(t *testing.T) {
	api, client := newFakeAPI(t)
	api.seed(func(f *fakeAPI) {
		f.resumes = []recruitapi.Resume{{ID: "r1", Name: "Jane Doe"}}
		f.matches = []recruitapi.Match{
			{JobID: "j1", ResumeID: "r1", Score: 0.9},
			{JobID: "j1", ResumeID: "gone", Score: 0.4},
		}
	})

	page := NewMatchesPage(failingJobs{}, client.Resumes(), client, matching.Config{}, &stubDrafter{}, nil)
	if err := page.Mount(context.Background()); err == nil {
		t.Fatalf("expected the jobs error from mount")
	}
	if page.Message() != LoadFailedMessage {
		t.Fatalf("unexpected message %q", page.Message())
	}
	if got := api.count("GET", "/resumes"); got != 1 {
		t.Fatalf("expected resumes to be fetched once, got %d", got)
	}

	views, err := page.Calculate(context.Background(), "j1", nil)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if page.Message() != "" {
		t.Fatalf("message not cleared: %q", page.Message())
	}
	if views[0].CandidateName != "Jane Doe" || views[1].CandidateName != matching.UnknownCandidate {
		t.Fatalf("unexpected views %+v", views)
	}

	var buf bytes.Buffer
	RenderMatches(&buf, views)
	if !strings.Contains(buf.String(), "Jane Doe") {
		t.Fatalf("match not rendered:\n%s", buf.String())
	}

	if _, err := page.Draft(context.Background(), "j1", views[0]); err == nil {
		t.Fatalf("expected draft to need the loaded job")
	}
}
