package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "tubescribe/internal/app/errors"
)

// Status reported by the external speech-to-text service for a job
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the external job will make no further progress
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// JobState is one snapshot of an external job. ResultKey names the
// object the service wrote its raw result to, valid once completed.
type JobState struct {
	Status    Status `json:"status"`
	ResultKey string `json:"result_key,omitempty"`
	Message   string `json:"message,omitempty"`
}

// JobClient is the boundary to the asynchronous transcription service
type JobClient interface {
	// Submit starts a transcription job for the media at the given URI
	// and returns the service-assigned job reference
	Submit(ctx context.Context, mediaURI string) (string, error)

	// Poll returns the current state of a previously submitted job
	Poll(ctx context.Context, jobRef string) (JobState, error)
}

// HTTPJobClient talks JSON over HTTP to a transcription service that
// exposes job submission at POST /jobs and status at GET /jobs/{ref}
type HTTPJobClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPJobClient creates a client for the given service endpoint
func NewHTTPJobClient(endpoint, apiKey string) (*HTTPJobClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("transcribe client requires an endpoint")
	}
	return &HTTPJobClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type submitRequest struct {
	MediaURI    string `json:"media_uri"`
	MediaFormat string `json:"media_format"`
}

type submitResponse struct {
	JobID string `json:"job_id"`
}

// Submit starts a transcription job
func (c *HTTPJobClient) Submit(ctx context.Context, mediaURI string) (string, error) {
	body, err := json.Marshal(submitRequest{
		MediaURI:    mediaURI,
		MediaFormat: "mp3",
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "failed to encode job submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/jobs", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "failed to create submit request")
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "job submission failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Newf(apperrors.KindUpstream, "job submission failed: %s", responseError(resp))
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "invalid submit response")
	}
	if out.JobID == "" {
		return "", apperrors.New(apperrors.KindUpstream, "submit response missing job_id")
	}
	return out.JobID, nil
}

// Poll fetches the current job state
func (c *HTTPJobClient) Poll(ctx context.Context, jobRef string) (JobState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/jobs/"+jobRef, nil)
	if err != nil {
		return JobState{}, apperrors.Wrap(err, apperrors.KindUpstream, "failed to create poll request")
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return JobState{}, apperrors.Wrap(err, apperrors.KindUpstream, "job poll failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return JobState{}, apperrors.Newf(apperrors.KindUpstream, "job poll failed: %s", responseError(resp))
	}

	var state JobState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return JobState{}, apperrors.Wrap(err, apperrors.KindUpstream, "invalid poll response")
	}
	return state, nil
}

func (c *HTTPJobClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func responseError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, msg)
}
