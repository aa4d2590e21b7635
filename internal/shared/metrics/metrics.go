package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var indexJobsQueued = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "index_jobs_in_queue",
	Help: "Number of jobs waiting in the indexing queue",
})

var indexJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "index_jobs_total",
	Help: "Indexing jobs processed, labelled by outcome",
}, []string{"outcome"})

var indexJobsDropped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "index_jobs_dropped_total",
	Help: "Jobs dropped because the indexing queue was full",
})

var indexDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "index_job_duration_seconds",
	Help:    "Time spent processing one indexing job.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
})

func IncrementJobsInQueue() {
	indexJobsQueued.Inc()
}

func DecrementJobsInQueue() {
	indexJobsQueued.Dec()
}

func IncrementJobsDropped() {
	indexJobsDropped.Inc()
}

func CaptureJobOutcome(outcome string, seconds float64) {
	indexJobsTotal.WithLabelValues(outcome).Inc()
	indexDuration.Observe(seconds)
}
