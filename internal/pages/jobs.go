// Package pages assembles the job, resume and match screens from the list,
// form and matching components. A page owns one refresh coordinator shared by
// everything on it.
package pages

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/jobform"
	"github.com/spigell/hire-assistant/internal/listview"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/refresh"
	"github.com/spigell/hire-assistant/internal/resource"
	"github.com/spigell/hire-assistant/internal/taglist"
)

// JobStore is what the jobs page needs from the API.
type JobStore interface {
	resource.Source[recruitapi.Job]
	resource.Creator[recruitapi.JobInput, recruitapi.Job]
}

var JobMessages = listview.Messages{
	FetchFailed:  "Failed to fetch jobs. Please try again later.",
	DeleteFailed: "Failed to delete job posting. Please try again.",
	Confirm:      "Are you sure you want to delete this job posting?",
	Empty:        "No job postings found. Create a job posting to get started!",
}

type JobsPage struct {
	Form *jobform.Form
	List *listview.ListView[recruitapi.Job]

	store       JobStore
	coordinator *refresh.Coordinator
}

func NewJobsPage(store JobStore, logger *zap.Logger, pageSize int, tagOpts ...taglist.Option) *JobsPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	coordinator := refresh.New(logger)

	return &JobsPage{
		Form:        jobform.New(logger, tagOpts...),
		List:        listview.New[recruitapi.Job]("jobs", store, coordinator, logger, listview.Options{PageSize: pageSize, Messages: JobMessages}),
		store:       store,
		coordinator: coordinator,
	}
}

func (p *JobsPage) Mount(ctx context.Context) error {
	return p.List.Mount(ctx)
}

// Submit creates a job from the form. The list refetches through the coordinator.
func (p *JobsPage) Submit(ctx context.Context) (recruitapi.Job, error) {
	return p.Form.Submit(ctx, p.store, p.coordinator)
}

func (p *JobsPage) Delete(ctx context.Context, id string, confirmer resource.Confirmer) (bool, error) {
	return p.List.Delete(ctx, id, confirmer)
}

func (p *JobsPage) Close() {
	p.List.Close()
}
