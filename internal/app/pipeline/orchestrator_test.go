package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tubescribe/internal/app/document"
	apperrors "tubescribe/internal/app/errors"
	"tubescribe/internal/app/metrics"
	"tubescribe/internal/app/storage"
	"tubescribe/internal/app/transcribe"
)

const (
	workingBucket  = "working"
	documentBucket = "documents"
)

type fakeFetcher struct {
	audio string
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.audio)), nil
}

// fakeJobClient replays a scripted sequence of poll outcomes
type fakeJobClient struct {
	submitRef string
	submitErr error

	states    []transcribe.JobState
	pollErrs  []error
	pollCalls int
	mediaURI  string
}

func (c *fakeJobClient) Submit(ctx context.Context, mediaURI string) (string, error) {
	c.mediaURI = mediaURI
	if c.submitErr != nil {
		return "", c.submitErr
	}
	return c.submitRef, nil
}

func (c *fakeJobClient) Poll(ctx context.Context, jobRef string) (transcribe.JobState, error) {
	i := c.pollCalls
	c.pollCalls++
	if i < len(c.pollErrs) && c.pollErrs[i] != nil {
		return transcribe.JobState{}, c.pollErrs[i]
	}
	if i >= len(c.states) {
		return c.states[len(c.states)-1], nil
	}
	return c.states[i], nil
}

type failingPutStore struct {
	storage.ObjectStore
	err error
}

func (s *failingPutStore) Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	return s.err
}

func newOrchestrator(objects storage.ObjectStore, fetcher *fakeFetcher, client *fakeJobClient, cfg Config) *Orchestrator {
	cfg.WorkingBucket = workingBucket
	cfg.DocumentBucket = documentBucket
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Millisecond
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(
		objects,
		fetcher,
		client,
		document.NewMaterializer(objects, workingBucket, documentBucket),
		cfg,
		logger,
		metrics.New(prometheus.NewRegistry()),
	)
}

func seedResult(t *testing.T, objects storage.ObjectStore, key, transcript string) {
	t.Helper()
	payload := `{"results":{"transcripts":[{"transcript":"` + transcript + `"}]}}`
	require.NoError(t, objects.Put(context.Background(), workingBucket, key,
		strings.NewReader(payload), -1, "application/json"))
}

func documentCount(t *testing.T, objects storage.ObjectStore) int {
	t.Helper()
	keys, err := objects.List(context.Background(), documentBucket, storage.DocumentKeyPrefix)
	require.NoError(t, err)
	return len(keys)
}

func TestRun_Success(t *testing.T) {
	objects := storage.NewMemoryStore()
	seedResult(t, objects, "result.json", "hello world")

	client := &fakeJobClient{
		submitRef: "ext-1",
		states: []transcribe.JobState{
			{Status: transcribe.StatusQueued},
			{Status: transcribe.StatusInProgress},
			{Status: transcribe.StatusCompleted, ResultKey: "result.json"},
		},
	}
	o := newOrchestrator(objects, &fakeFetcher{audio: "mp3-bytes"}, client, Config{})

	doc, err := o.Run(context.Background(), "Demo", "https://youtube.com/watch?v=abc")
	require.NoError(t, err)

	assert.Equal(t, "Demo", doc.Name)
	assert.Equal(t, "hello world", doc.Transcripted)
	assert.NotEmpty(t, doc.DocID)
	assert.Equal(t, 3, client.pollCalls)

	// the audio object was uploaded and handed to the external service
	audioKeys, err := objects.List(context.Background(), workingBucket, storage.AudioKeyPrefix)
	require.NoError(t, err)
	require.Len(t, audioKeys, 1)
	assert.Contains(t, client.mediaURI, audioKeys[0])

	assert.Equal(t, 1, documentCount(t, objects))
}

func TestRun_FetchFailure(t *testing.T) {
	objects := storage.NewMemoryStore()
	fetcher := &fakeFetcher{err: apperrors.New(apperrors.KindUpstream, "video unavailable")}
	o := newOrchestrator(objects, fetcher, &fakeJobClient{}, Config{})

	_, err := o.Run(context.Background(), "Demo", "link")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))

	// no audio object and no document may exist for a failed job
	audioKeys, listErr := objects.List(context.Background(), workingBucket, storage.AudioKeyPrefix)
	require.NoError(t, listErr)
	assert.Empty(t, audioKeys)
	assert.Equal(t, 0, documentCount(t, objects))
}

func TestRun_UploadFailure(t *testing.T) {
	objects := &failingPutStore{
		ObjectStore: storage.NewMemoryStore(),
		err:         apperrors.New(apperrors.KindStorage, "connection reset"),
	}
	o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, &fakeJobClient{}, Config{})

	_, err := o.Run(context.Background(), "Demo", "link")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStorage))
	assert.Equal(t, 0, documentCount(t, objects))
}

func TestRun_SubmitFailure(t *testing.T) {
	objects := storage.NewMemoryStore()
	client := &fakeJobClient{submitErr: apperrors.New(apperrors.KindUpstream, "service down")}
	o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, client, Config{})

	_, err := o.Run(context.Background(), "Demo", "link")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	assert.Equal(t, 0, documentCount(t, objects))
}

func TestRun_ExternalJobFailed(t *testing.T) {
	objects := storage.NewMemoryStore()
	client := &fakeJobClient{
		submitRef: "ext-1",
		states: []transcribe.JobState{
			{Status: transcribe.StatusInProgress},
			{Status: transcribe.StatusFailed, Message: "unsupported codec"},
		},
	}
	o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, client, Config{})

	_, err := o.Run(context.Background(), "Demo", "link")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	assert.Contains(t, err.Error(), "unsupported codec")
	assert.Equal(t, 0, documentCount(t, objects))
}

func TestRun_TransientPollErrorsAreRetried(t *testing.T) {
	objects := storage.NewMemoryStore()
	seedResult(t, objects, "result.json", "recovered")

	client := &fakeJobClient{
		submitRef: "ext-1",
		pollErrs: []error{
			apperrors.New(apperrors.KindUpstream, "timeout"),
			apperrors.New(apperrors.KindUpstream, "timeout"),
		},
		states: []transcribe.JobState{
			{}, {},
			{Status: transcribe.StatusCompleted, ResultKey: "result.json"},
		},
	}
	o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, client, Config{MaxPollFailures: 5})

	doc, err := o.Run(context.Background(), "Demo", "link")
	require.NoError(t, err)
	assert.Equal(t, "recovered", doc.Transcripted)
	assert.Equal(t, 3, client.pollCalls)
}

func TestRun_ConsecutivePollFailuresExhaustBudget(t *testing.T) {
	objects := storage.NewMemoryStore()
	pollErr := apperrors.New(apperrors.KindUpstream, "timeout")
	client := &fakeJobClient{
		submitRef: "ext-1",
		pollErrs:  []error{pollErr, pollErr, pollErr},
		states:    []transcribe.JobState{{Status: transcribe.StatusInProgress}},
	}
	o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, client, Config{MaxPollFailures: 3})

	_, err := o.Run(context.Background(), "Demo", "link")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	assert.Equal(t, 3, client.pollCalls)
	assert.Equal(t, 0, documentCount(t, objects))
}

func TestRun_PollAttemptsAreBounded(t *testing.T) {
	objects := storage.NewMemoryStore()
	client := &fakeJobClient{
		submitRef: "ext-1",
		states:    []transcribe.JobState{{Status: transcribe.StatusInProgress}},
	}
	o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, client, Config{MaxPollAttempts: 4})

	_, err := o.Run(context.Background(), "Demo", "link")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	assert.Equal(t, 4, client.pollCalls)
}

func TestRun_CancelledDuringPolling(t *testing.T) {
	objects := storage.NewMemoryStore()
	client := &fakeJobClient{
		submitRef: "ext-1",
		states:    []transcribe.JobState{{Status: transcribe.StatusInProgress}},
	}
	o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, client, Config{
		PollInterval: 50 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := o.Run(ctx, "Demo", "link")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	assert.Equal(t, 0, documentCount(t, objects))
}

func TestRun_ConcurrentJobsAreIndependent(t *testing.T) {
	objects := storage.NewMemoryStore()
	seedResult(t, objects, "result-a.json", "alpha")
	seedResult(t, objects, "result-b.json", "beta")

	run := func(resultKey, name string) (string, error) {
		client := &fakeJobClient{
			submitRef: "ext-" + name,
			states: []transcribe.JobState{
				{Status: transcribe.StatusCompleted, ResultKey: resultKey},
			},
		}
		o := newOrchestrator(objects, &fakeFetcher{audio: "x"}, client, Config{})
		doc, err := o.Run(context.Background(), name, "link")
		if err != nil {
			return "", err
		}
		return doc.Transcripted, nil
	}

	type result struct {
		text string
		err  error
	}
	results := make(chan result, 2)
	go func() {
		text, err := run("result-a.json", "A")
		results <- result{text, err}
	}()
	go func() {
		text, err := run("result-b.json", "B")
		results <- result{text, err}
	}()

	texts := map[string]bool{}
	for i := 0; i < 2; i++ {
		r := <-results
		require.NoError(t, r.err)
		texts[r.text] = true
	}
	assert.True(t, texts["alpha"])
	assert.True(t, texts["beta"])
	assert.Equal(t, 2, documentCount(t, objects))
}
