package recruitapi

import (
	"errors"
	"fmt"
	"strings"
)

// HTTPError is returned when the API answers with an unexpected status.
// Detail holds the "detail" field of the error body when the server sent one.
type HTTPError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("bad status: %s: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("bad status: %s", e.Status)
}

// ValidationError reports required fields that are missing before any request is issued.
type ValidationError struct {
	Resource string
	Fields   []string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: missing required fields: %s", e.Resource, strings.Join(e.Fields, ", "))
}

// FetchError wraps a failed read (list or by-id).
type FetchError struct {
	Resource string
	ID       string
	Err      error
}

func (e *FetchError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("fetch %s %s: %v", e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MutationError wraps a failed create, update or delete.
type MutationError struct {
	Op       string
	Resource string
	ID       string
	Err      error
}

func (e *MutationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Detail returns the server-provided message, if any.
func (e *MutationError) Detail() string {
	return Detail(e.Err)
}

// MatchComputationError wraps a failed match calculation.
type MatchComputationError struct {
	JobID string
	Err   error
}

func (e *MatchComputationError) Error() string {
	return fmt.Sprintf("calculate matches for job %s: %v", e.JobID, e.Err)
}

func (e *MatchComputationError) Unwrap() error { return e.Err }

// Detail extracts the server detail message from err, or returns an empty string.
func Detail(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Detail
	}
	return ""
}

// UserMessage turns err into the inline message shown to the user.
// Validation messages are shown as is, server details win over the fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}

	if detail := Detail(err); detail != "" {
		return detail
	}

	return fallback
}

// IsNotFound reports whether err carries a 404 from the API.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 404
}
