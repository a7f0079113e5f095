package pages

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spigell/hire-assistant/internal/recruitapi"
)

// fakeAPI is an in-memory version of the hiring assistant API.
type fakeAPI struct {
	mu       sync.Mutex
	jobs     []recruitapi.Job
	resumes  []recruitapi.Resume
	matches  []recruitapi.Match
	requests []string
	nextID   int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *recruitapi.Client) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	return api, recruitapi.New(nil, srv.URL, "")
}

func (f *fakeAPI) seed(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) count(method, prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, method+" "+prefix) {
			n++
		}
	}
	return n
}

func (f *fakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/jobs":
		writeJSON(w, http.StatusOK, f.jobs)
	case r.Method == http.MethodPost && r.URL.Path == "/jobs":
		var in recruitapi.JobInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
			return
		}
		job := recruitapi.Job{
			ID:             f.id("job-"),
			Title:          in.Title,
			Company:        in.Company,
			Description:    in.Description,
			JobType:        in.JobType,
			SkillsRequired: in.SkillsRequired,
		}
		f.jobs = append(f.jobs, job)
		writeJSON(w, http.StatusCreated, job)
	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] == "jobs":
		for i, job := range f.jobs {
			if job.ID == parts[1] {
				f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Job not found"})
	case r.Method == http.MethodGet && r.URL.Path == "/resumes":
		writeJSON(w, http.StatusOK, f.resumes)
	case r.Method == http.MethodPost && r.URL.Path == "/resumes":
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "No file"})
			return
		}
		defer file.Close()
		_, _ = io.Copy(io.Discard, file)

		resume := recruitapi.Resume{ID: f.id("resume-"), Name: strings.TrimSuffix(header.Filename, ".json")}
		f.resumes = append(f.resumes, resume)
		writeJSON(w, http.StatusCreated, resume)
	case r.Method == http.MethodPost && r.URL.Path == "/matches/calculate":
		writeJSON(w, http.StatusOK, f.matches)
	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "matches" && parts[1] == "job":
		writeJSON(w, http.StatusOK, f.matches)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
