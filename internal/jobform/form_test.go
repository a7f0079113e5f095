package jobform

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/refresh"
	"github.com/spigell/hire-assistant/internal/resource"
)

type stubCreator struct {
	calls []recruitapi.JobInput
	err   error
}

func (s *stubCreator) Create(ctx context.Context, in recruitapi.JobInput) (recruitapi.Job, error) {
	s.calls = append(s.calls, in)
	if s.err != nil {
		return recruitapi.Job{}, s.err
	}
	return recruitapi.Job{ID: "j1", Title: in.Title, Company: in.Company}, nil
}

func fill(t *testing.T, f *Form, values map[Field]string) {
	t.Helper()
	for field, value := range values {
		if err := f.Set(field, value); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
}

func TestEnterOnTagFieldDoesNotSubmit(t *testing.T) {
	f := New(nil)
	fill(t, f, map[Field]string{Skills: "Python"})

	if f.Enter(Skills) {
		t.Fatalf("enter on a tag field must not submit")
	}
	if got := f.Editor(Skills).Items(); !reflect.DeepEqual(got, []string{"Python"}) {
		t.Fatalf("unexpected skills %v", got)
	}
	if f.Editor(Requirements).Len() != 0 || f.Editor(Qualifications).Len() != 0 {
		t.Fatalf("other editors must stay untouched")
	}

	if !f.Enter(Title) {
		t.Fatalf("enter on a scalar field must submit")
	}
}

func TestEditorsAreIndependent(t *testing.T) {
	f := New(nil)
	fill(t, f, map[Field]string{Requirements: "Degree", Qualifications: "AWS"})
	f.Enter(Requirements)

	if f.Editor(Qualifications).Len() != 0 {
		t.Fatalf("qualifications committed by enter on requirements")
	}
	if f.Editor(Qualifications).Input() != "AWS" {
		t.Fatalf("qualifications input lost")
	}
}

func TestSetUnknownField(t *testing.T) {
	f := New(nil)
	if err := f.Set(Field("nope"), "x"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestSubmitValidationKeepsForm(t *testing.T) {
	f := New(nil)
	fill(t, f, map[Field]string{Title: "Engineer", Skills: "Go"})
	f.Enter(Skills)

	creator := &stubCreator{}
	coordinator := refresh.New(nil)

	_, err := f.Submit(context.Background(), creator, coordinator)

	var validation *recruitapi.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(creator.calls) != 0 {
		t.Fatalf("creator called for an invalid form")
	}
	if coordinator.Version() != 0 {
		t.Fatalf("coordinator bumped on failure")
	}

	alert := f.Alert()
	if alert == nil || alert.Kind != AlertError || alert.Message != "Please fill in all required fields (title, company, description)." {
		t.Fatalf("unexpected alert %+v", alert)
	}

	in, _ := f.Payload()
	if in.Title != "Engineer" || len(in.SkillsRequired) != 1 {
		t.Fatalf("form contents lost: %+v", in)
	}
}

func TestSubmitBadExperience(t *testing.T) {
	f := New(nil)
	fill(t, f, map[Field]string{Title: "Engineer", Company: "Acme", Description: "Build", Experience: "three"})

	creator := &stubCreator{}
	if _, err := f.Submit(context.Background(), creator, nil); err == nil {
		t.Fatalf("expected error")
	}
	if len(creator.calls) != 0 {
		t.Fatalf("creator called with bad experience")
	}
}

func TestSubmitSuccess(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	f := New(zap.New(core))
	fill(t, f, map[Field]string{
		Title:       "Engineer",
		Company:     "Acme",
		Description: "Build things",
		Experience:  "3",
		Skills:      "Go",
	})
	f.Enter(Skills)

	creator := &stubCreator{}
	coordinator := refresh.New(nil)

	var events []refresh.Event
	coordinator.Subscribe(func(ctx context.Context, e refresh.Event) {
		events = append(events, e)
	})

	job, err := f.Submit(context.Background(), creator, coordinator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != "j1" {
		t.Fatalf("unexpected job %+v", job)
	}

	sent := creator.calls[0]
	if sent.ExperienceRequired != 3 || sent.JobType != recruitapi.DefaultJobType || !reflect.DeepEqual(sent.SkillsRequired, []string{"Go"}) {
		t.Fatalf("unexpected payload %+v", sent)
	}

	if len(events) != 1 || events[0].Version != 1 {
		t.Fatalf("expected one refresh event, got %+v", events)
	}
	if alert := f.Alert(); alert == nil || alert.Kind != AlertSuccess || alert.Message != CreatedMessage {
		t.Fatalf("unexpected alert %+v", alert)
	}

	in, _ := f.Payload()
	if in.Title != "" || len(in.SkillsRequired) != 0 || in.JobType != recruitapi.DefaultJobType {
		t.Fatalf("form not reset: %+v", in)
	}

	if logs.FilterMessage("job posting created").Len() != 1 {
		t.Fatalf("expected creation to be logged")
	}
}

func TestSubmitServerFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with detail",
			err:  &recruitapi.MutationError{Op: "create", Resource: "jobs", Err: &recruitapi.HTTPError{StatusCode: 409, Detail: "Duplicate posting"}},
			want: "Duplicate posting",
		},
		{
			name: "without detail",
			err:  &recruitapi.MutationError{Op: "create", Resource: "jobs", Err: errors.New("connection reset")},
			want: CreateFailedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(nil)
			fill(t, f, map[Field]string{Title: "Engineer", Company: "Acme", Description: "Build"})

			_, err := f.Submit(context.Background(), &stubCreator{err: tt.err}, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if f.Alert().Message != tt.want {
				t.Fatalf("unexpected alert %q", f.Alert().Message)
			}

			in, _ := f.Payload()
			if in.Title != "Engineer" {
				t.Fatalf("form cleared after failure")
			}
		})
	}
}

func TestSubmitAcceptsCreatorFunc(t *testing.T) {
	f := New(nil)
	fill(t, f, map[Field]string{Title: "Engineer", Company: "Acme", Description: "Build"})

	creator := resource.CreatorFunc[recruitapi.JobInput, recruitapi.Job](func(ctx context.Context, in recruitapi.JobInput) (recruitapi.Job, error) {
		return recruitapi.Job{ID: "fn"}, nil
	})

	job, err := f.Submit(context.Background(), creator, nil)
	if err != nil || job.ID != "fn" {
		t.Fatalf("unexpected result %+v %v", job, err)
	}
}

func TestLoad(t *testing.T) {
	f := New(nil)
	f.Load(recruitapi.Job{
		Title:              "Engineer",
		Company:            "Acme",
		Description:        "Build",
		ExperienceRequired: 2,
		SkillsRequired:     []string{"Go", "SQL"},
	})

	in, err := f.Payload()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.ExperienceRequired != 2 || in.JobType != recruitapi.DefaultJobType || len(in.SkillsRequired) != 2 {
		t.Fatalf("unexpected payload %+v", in)
	}
}
