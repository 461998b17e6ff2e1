package model

import (
	"fmt"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle stage of an in-flight transcription job
type JobStatus int

const (
	JobStatusPending JobStatus = iota
	JobStatusUploading
	JobStatusSubmitted
	JobStatusPolling
	JobStatusCompleted
	JobStatusFailed
)

// String returns the human-readable status name
func (s JobStatus) String() string {
	switch s {
	case JobStatusPending:
		return "pending"
	case JobStatusUploading:
		return "uploading"
	case JobStatusSubmitted:
		return "submitted"
	case JobStatusPolling:
		return "polling"
	case JobStatusCompleted:
		return "completed"
	case JobStatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Terminal reports whether the status ends the job's lifecycle
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job tracks one run of the transcription pipeline. A Job lives only for
// the duration of its run and is owned by a single goroutine.
type Job struct {
	ID             string
	DisplayName    string
	SourceURI      string
	Status         JobStatus
	ExternalJobRef string
	AudioObjectKey string
}

// NewJob creates a pending job for the given source
func NewJob(displayName, sourceURI string) *Job {
	return &Job{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		SourceURI:   sourceURI,
		Status:      JobStatusPending,
	}
}

// Advance moves the job to the next status. Statuses only move forward
// through pending, uploading, submitted, polling, completed; failed is
// reachable from any non-terminal status. Regressions and skips past
// the submitted/polling boundary are rejected.
func (j *Job) Advance(next JobStatus) error {
	if j.Status.Terminal() {
		return fmt.Errorf("job %s is already %s", j.ID, j.Status)
	}
	if next == JobStatusFailed {
		j.Status = JobStatusFailed
		return nil
	}
	if next != j.Status+1 {
		return fmt.Errorf("invalid transition: %s -> %s", j.Status, next)
	}
	j.Status = next
	return nil
}

// SetExternalRef records the identifier assigned by the external
// transcription service. The ref is set at most once.
func (j *Job) SetExternalRef(ref string) error {
	if j.ExternalJobRef != "" {
		return fmt.Errorf("job %s already has external ref %s", j.ID, j.ExternalJobRef)
	}
	if ref == "" {
		return fmt.Errorf("external ref must not be empty")
	}
	j.ExternalJobRef = ref
	return nil
}
