package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricPrefix = "sensorgen_"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics records the outcome of generation jobs. It implements prometheus.Collector so it can be registered
// with any registry.
type Metrics struct {
	jobLatency      prometheus.Histogram
	jobs            *prometheus.CounterVec
	recordsInserted *prometheus.CounterVec
	sinkErrors      *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		jobLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricPrefix + "job_latency_seconds",
			Help:    "Time taken to generate and insert one batch of sensor records",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15),
		}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "jobs_total",
			Help: "Number of generation jobs run, by outcome",
		}, []string{"outcome"}),
		recordsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "records_inserted_total",
			Help: "Number of sensor records accepted by the sink",
		}, []string{"sink"}),
		sinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "sink_errors_total",
			Help: "Number of batches the sink failed to insert",
		}, []string{"sink"}),
	}
}

// JobLatency is observed once per job by the scheduler.
func (m *Metrics) JobLatency() prometheus.Observer {
	return m.jobLatency
}

func (m *Metrics) RecordSuccess(sink string, inserted int) {
	m.jobs.WithLabelValues(outcomeSuccess).Inc()
	m.recordsInserted.WithLabelValues(sink).Add(float64(inserted))
}

func (m *Metrics) RecordFailure(sink string) {
	m.jobs.WithLabelValues(outcomeFailure).Inc()
	m.sinkErrors.WithLabelValues(sink).Inc()
}

func (m *Metrics) SucceededJobs() prometheus.Counter {
	return m.jobs.WithLabelValues(outcomeSuccess)
}

func (m *Metrics) FailedJobs() prometheus.Counter {
	return m.jobs.WithLabelValues(outcomeFailure)
}

func (m *Metrics) RecordsInserted(sink string) prometheus.Counter {
	return m.recordsInserted.WithLabelValues(sink)
}

func (m *Metrics) SinkErrors(sink string) prometheus.Counter {
	return m.sinkErrors.WithLabelValues(sink)
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.jobLatency.Describe(ch)
	m.jobs.Describe(ch)
	m.recordsInserted.Describe(ch)
	m.sinkErrors.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.jobLatency.Collect(ch)
	m.jobs.Collect(ch)
	m.recordsInserted.Collect(ch)
	m.sinkErrors.Collect(ch)
}
