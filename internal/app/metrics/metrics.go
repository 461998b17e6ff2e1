package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline counters
type Metrics struct {
	JobsStarted   prometheus.Counter
	JobsCompleted prometheus.Counter
	JobsFailed    prometheus.Counter
	PollAttempts  prometheus.Counter
}

// New registers the pipeline counters on the given registerer.
// Tests pass their own registry to avoid collisions.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JobsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tubescribe_jobs_started_total",
			Help: "Number of transcription jobs started.",
		}),
		JobsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tubescribe_jobs_completed_total",
			Help: "Number of transcription jobs that produced a document.",
		}),
		JobsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "tubescribe_jobs_failed_total",
			Help: "Number of transcription jobs that ended in failure.",
		}),
		PollAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "tubescribe_poll_attempts_total",
			Help: "Number of status polls issued against the external service.",
		}),
	}
}
