package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	job := NewJob("Demo", "https://youtube.com/watch?v=abc")

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "Demo", job.DisplayName)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Empty(t, job.ExternalJobRef)

	other := NewJob("Demo", "https://youtube.com/watch?v=abc")
	assert.NotEqual(t, job.ID, other.ID)
}

func TestJobAdvance_ForwardOnly(t *testing.T) {
	job := NewJob("Demo", "link")

	sequence := []JobStatus{
		JobStatusUploading,
		JobStatusSubmitted,
		JobStatusPolling,
		JobStatusCompleted,
	}
	for _, next := range sequence {
		require.NoError(t, job.Advance(next))
		assert.Equal(t, next, job.Status)
	}
}

func TestJobAdvance_RejectsSkipsAndRegressions(t *testing.T) {
	tests := []struct {
		name string
		from JobStatus
		to   JobStatus
	}{
		{"skip uploading", JobStatusPending, JobStatusSubmitted},
		{"skip submitted before polling", JobStatusUploading, JobStatusPolling},
		{"skip straight to completed", JobStatusPending, JobStatusCompleted},
		{"regression", JobStatusPolling, JobStatusUploading},
		{"same status", JobStatusUploading, JobStatusUploading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewJob("Demo", "link")
			job.Status = tt.from
			assert.Error(t, job.Advance(tt.to))
			assert.Equal(t, tt.from, job.Status)
		})
	}
}

func TestJobAdvance_FailedFromAnyActiveStatus(t *testing.T) {
	for _, from := range []JobStatus{JobStatusPending, JobStatusUploading, JobStatusSubmitted, JobStatusPolling} {
		job := NewJob("Demo", "link")
		job.Status = from
		require.NoError(t, job.Advance(JobStatusFailed))
		assert.Equal(t, JobStatusFailed, job.Status)
	}
}

func TestJobAdvance_TerminalIsFinal(t *testing.T) {
	job := NewJob("Demo", "link")
	job.Status = JobStatusCompleted
	assert.Error(t, job.Advance(JobStatusFailed))

	job.Status = JobStatusFailed
	assert.Error(t, job.Advance(JobStatusCompleted))
}

func TestSetExternalRef_AtMostOnce(t *testing.T) {
	job := NewJob("Demo", "link")

	require.NoError(t, job.SetExternalRef("job-123"))
	assert.Equal(t, "job-123", job.ExternalJobRef)

	assert.Error(t, job.SetExternalRef("job-456"))
	assert.Equal(t, "job-123", job.ExternalJobRef)

	fresh := NewJob("Demo", "link")
	assert.Error(t, fresh.SetExternalRef(""))
}

func TestJobStatusString(t *testing.T) {
	assert.Equal(t, "pending", JobStatusPending.String())
	assert.Equal(t, "failed", JobStatusFailed.String())
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
	assert.False(t, JobStatusPolling.Terminal())
}
