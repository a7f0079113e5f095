package recruitapi

import "context"

// JobStore exposes the jobs endpoints as a generic collection source.
type JobStore struct {
	client *Client
}

func (c *Client) Jobs() JobStore { return JobStore{client: c} }

func (s JobStore) List(ctx context.Context) ([]Job, error) { return s.client.ListJobs(ctx) }

func (s JobStore) Get(ctx context.Context, id string) (Job, error) { return s.client.GetJob(ctx, id) }

func (s JobStore) Delete(ctx context.Context, id string) error { return s.client.DeleteJob(ctx, id) }

func (s JobStore) Create(ctx context.Context, in JobInput) (Job, error) {
	return s.client.CreateJob(ctx, in)
}

// ResumeStore exposes the resumes endpoints as a generic collection source.
type ResumeStore struct {
	client *Client
}

func (c *Client) Resumes() ResumeStore { return ResumeStore{client: c} }

func (s ResumeStore) List(ctx context.Context) ([]Resume, error) { return s.client.ListResumes(ctx) }

func (s ResumeStore) Get(ctx context.Context, id string) (Resume, error) {
	return s.client.GetResume(ctx, id)
}

func (s ResumeStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteResume(ctx, id)
}

func (s ResumeStore) Create(ctx context.Context, upload ResumeUpload) (Resume, error) {
	return s.client.UploadResume(ctx, upload)
}
