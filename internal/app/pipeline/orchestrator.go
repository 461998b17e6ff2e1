package pipeline

import (
	"context"
	"log/slog"
	"time"

	"tubescribe/internal/app/document"
	apperrors "tubescribe/internal/app/errors"
	"tubescribe/internal/app/media"
	"tubescribe/internal/app/metrics"
	"tubescribe/internal/app/model"
	"tubescribe/internal/app/storage"
	"tubescribe/internal/app/transcribe"
)

// Config controls the pipeline's buckets and poll behavior
type Config struct {
	WorkingBucket  string
	DocumentBucket string
	// PollInterval is the base delay between status polls
	PollInterval time.Duration
	// MaxPollAttempts caps the total number of polls per job
	MaxPollAttempts int
	// MaxPollFailures is the number of consecutive poll errors
	// tolerated before the job is failed
	MaxPollFailures int
}

const (
	defaultPollInterval    = 10 * time.Second
	defaultMaxPollAttempts = 90
	defaultMaxPollFailures = 5
	maxPollBackoff         = 2 * time.Minute
)

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.MaxPollAttempts <= 0 {
		c.MaxPollAttempts = defaultMaxPollAttempts
	}
	if c.MaxPollFailures <= 0 {
		c.MaxPollFailures = defaultMaxPollFailures
	}
	return c
}

// Orchestrator owns the job state machine and drives one run per
// request from upload through materialization. Runs share no mutable
// state and may execute concurrently.
type Orchestrator struct {
	objects      storage.ObjectStore
	fetcher      media.Fetcher
	jobs         transcribe.JobClient
	materializer *document.Materializer
	cfg          Config
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// NewOrchestrator wires the pipeline's collaborators
func NewOrchestrator(
	objects storage.ObjectStore,
	fetcher media.Fetcher,
	jobs transcribe.JobClient,
	materializer *document.Materializer,
	cfg Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Orchestrator {
	return &Orchestrator{
		objects:      objects,
		fetcher:      fetcher,
		jobs:         jobs,
		materializer: materializer,
		cfg:          cfg.withDefaults(),
		logger:       logger,
		metrics:      m,
	}
}

// Run executes one full pipeline pass and returns the materialized
// document. Ctx cancellation aborts the run at the next suspension
// point; the job is then failed and the error surfaced to the caller.
func (o *Orchestrator) Run(ctx context.Context, displayName, sourceLink string) (*model.TranscriptDocument, error) {
	job := model.NewJob(displayName, sourceLink)
	o.metrics.JobsStarted.Inc()
	o.logger.Info("job started", "job_id", job.ID, "name", displayName)

	doc, err := o.run(ctx, job)
	if err != nil {
		_ = job.Advance(model.JobStatusFailed)
		o.metrics.JobsFailed.Inc()
		o.logger.Error("job failed",
			"job_id", job.ID,
			"external_ref", job.ExternalJobRef,
			"error", err.Error(),
		)
		return nil, err
	}

	o.metrics.JobsCompleted.Inc()
	o.logger.Info("job completed",
		"job_id", job.ID,
		"external_ref", job.ExternalJobRef,
		"docid", doc.DocID,
	)
	return doc, nil
}

func (o *Orchestrator) run(ctx context.Context, job *model.Job) (*model.TranscriptDocument, error) {
	stream, err := o.fetcher.Fetch(ctx, job.SourceURI)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstream, "audio extraction failed")
	}

	if err := job.Advance(model.JobStatusUploading); err != nil {
		return nil, err
	}
	audioKey := storage.NewAudioKey()
	putErr := o.objects.Put(ctx, o.cfg.WorkingBucket, audioKey, stream, -1, storage.AudioContentType)
	closeErr := stream.Close()
	if putErr != nil {
		return nil, apperrors.Wrap(putErr, apperrors.KindStorage, "audio upload failed")
	}
	if closeErr != nil {
		return nil, apperrors.Wrap(closeErr, apperrors.KindUpstream, "audio extraction failed")
	}
	job.AudioObjectKey = audioKey

	ref, err := o.jobs.Submit(ctx, o.objects.URL(o.cfg.WorkingBucket, audioKey))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstream, "job submission failed")
	}
	if err := job.Advance(model.JobStatusSubmitted); err != nil {
		return nil, err
	}
	if err := job.SetExternalRef(ref); err != nil {
		return nil, err
	}

	if err := job.Advance(model.JobStatusPolling); err != nil {
		return nil, err
	}
	state, err := o.awaitCompletion(ctx, job)
	if err != nil {
		return nil, err
	}

	doc, err := o.materializer.Materialize(ctx, job, state.ResultKey)
	if err != nil {
		return nil, err
	}
	if err := job.Advance(model.JobStatusCompleted); err != nil {
		return nil, err
	}
	return doc, nil
}

// awaitCompletion polls the external job until it reaches a terminal
// state. Transient poll errors back off exponentially and only fail
// the job after MaxPollFailures in a row; MaxPollAttempts bounds the
// total wait.
func (o *Orchestrator) awaitCompletion(ctx context.Context, job *model.Job) (transcribe.JobState, error) {
	attempts := 0
	failures := 0
	delay := o.cfg.PollInterval

	for {
		if attempts >= o.cfg.MaxPollAttempts {
			return transcribe.JobState{}, apperrors.Newf(apperrors.KindUpstream,
				"gave up on job %s after %d polls", job.ExternalJobRef, attempts)
		}
		if err := wait(ctx, delay); err != nil {
			return transcribe.JobState{}, apperrors.Wrap(err, apperrors.KindUpstream, "polling cancelled")
		}

		attempts++
		o.metrics.PollAttempts.Inc()
		state, err := o.jobs.Poll(ctx, job.ExternalJobRef)
		if err != nil {
			failures++
			if failures >= o.cfg.MaxPollFailures {
				return transcribe.JobState{}, apperrors.Wrapf(err, apperrors.KindUpstream,
					"job %s poll failed %d times in a row", job.ExternalJobRef, failures)
			}
			delay = pollBackoff(o.cfg.PollInterval, failures)
			o.logger.Warn("job poll failed, backing off",
				"job_id", job.ID,
				"external_ref", job.ExternalJobRef,
				"failures", failures,
				"next_delay", delay.String(),
				"error", err.Error(),
			)
			continue
		}
		failures = 0
		delay = o.cfg.PollInterval

		switch state.Status {
		case transcribe.StatusCompleted:
			return state, nil
		case transcribe.StatusFailed:
			return transcribe.JobState{}, apperrors.Newf(apperrors.KindUpstream,
				"external job %s failed: %s", job.ExternalJobRef, state.Message)
		}
	}
}

// wait sleeps for d or returns early with the context's error
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func pollBackoff(base time.Duration, failures int) time.Duration {
	d := base << failures
	if d > maxPollBackoff {
		return maxPollBackoff
	}
	return d
}
