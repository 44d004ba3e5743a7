package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the runs of the scheduled jobs.
//
//   - worker_job_runs_total{job,status}: runs by outcome (success, failure)
//   - worker_job_duration_seconds{job}: run duration
//   - worker_job_last_success_timestamp{job}: Unix time of the last success
type Metrics struct {
	JobRunsTotal        *prometheus.CounterVec
	JobDurationSeconds  *prometheus.HistogramVec
	LastSuccessUnixTime *prometheus.GaugeVec
}

// NewMetrics registers the worker metrics with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Total number of scheduled job runs by status (success/failure)",
		}, []string{"job", "status"}),

		JobDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of scheduled job runs in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30, 60},
		}, []string{"job"}),

		LastSuccessUnixTime: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful job run",
		}, []string{"job"}),
	}
}

// RecordRun records one finished run of job.
func (m *Metrics) RecordRun(job string, seconds float64, err error) {
	m.JobDurationSeconds.WithLabelValues(job).Observe(seconds)
	if err != nil {
		m.JobRunsTotal.WithLabelValues(job, "failure").Inc()
		return
	}
	m.JobRunsTotal.WithLabelValues(job, "success").Inc()
	m.LastSuccessUnixTime.WithLabelValues(job).SetToCurrentTime()
}
