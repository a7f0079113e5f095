package pages

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/jobform"
	"github.com/spigell/hire-assistant/internal/listview"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/refresh"
	"github.com/spigell/hire-assistant/internal/resource"
)

type ResumeStore interface {
	resource.Source[recruitapi.Resume]
	resource.Creator[recruitapi.ResumeUpload, recruitapi.Resume]
}

const (
	UploadedMessage     = "Resume uploaded successfully!"
	UploadFailedMessage = "Error uploading resume. Please try again."
)

var ResumeMessages = listview.Messages{
	FetchFailed:  "Failed to fetch resumes. Please try again later.",
	DeleteFailed: "Failed to delete resume. Please try again.",
	Confirm:      "Are you sure you want to delete this resume?",
	Empty:        "No resumes found. Upload a resume to get started!",
}

type ResumesPage struct {
	List *listview.ListView[recruitapi.Resume]

	store       ResumeStore
	coordinator *refresh.Coordinator
	logger      *zap.Logger
	alert       *jobform.Alert
}

func NewResumesPage(store ResumeStore, logger *zap.Logger, pageSize int) *ResumesPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	coordinator := refresh.New(logger)

	return &ResumesPage{
		List:        listview.New[recruitapi.Resume]("resumes", store, coordinator, logger, listview.Options{PageSize: pageSize, Messages: ResumeMessages}),
		store:       store,
		coordinator: coordinator,
		logger:      logger,
	}
}

func (p *ResumesPage) Mount(ctx context.Context) error {
	return p.List.Mount(ctx)
}

// Upload sends one resume file and refreshes the list on success.
func (p *ResumesPage) Upload(ctx context.Context, upload recruitapi.ResumeUpload) (recruitapi.Resume, error) {
	resume, err := resource.Create[recruitapi.ResumeUpload, recruitapi.Resume](ctx, p.store, upload)
	if err != nil {
		p.logger.Warn("resume not uploaded", zap.String("file", upload.Filename), zap.Error(err))
		p.alert = &jobform.Alert{Kind: jobform.AlertError, Message: recruitapi.UserMessage(err, UploadFailedMessage)}
		return resume, err
	}

	p.logger.Info("resume uploaded", zap.String("id", resume.ID), zap.String("name", resume.Name))
	p.alert = &jobform.Alert{Kind: jobform.AlertSuccess, Message: UploadedMessage}
	p.coordinator.Bump(ctx, "resume uploaded")

	return resume, nil
}

func (p *ResumesPage) Alert() *jobform.Alert { return p.alert }

func (p *ResumesPage) Delete(ctx context.Context, id string, confirmer resource.Confirmer) (bool, error) {
	return p.List.Delete(ctx, id, confirmer)
}

func (p *ResumesPage) Close() {
	p.List.Close()
}
