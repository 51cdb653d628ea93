// Package metrics records DataZone call metrics and pushes them to a Prometheus Pushgateway.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "zonedemo"

// Outcome labels for recorded calls.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder holds the collectors for remote calls.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the call collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "datazone",
			Name:      "requests_total",
			Help:      "DataZone API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "datazone",
			Name:      "request_duration_seconds",
			Help:      "DataZone API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.requests, r.duration)
	return r
}

// Observe records one completed call.
func (r *Recorder) Observe(operation string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	r.requests.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Push sends the collected metrics to a Pushgateway under the given job name.
func (r *Recorder) Push(url, job string) error {
	if r == nil {
		return errors.New("nil recorder")
	}
	if url == "" {
		return errors.New("pushgateway url is required")
	}
	if err := push.New(url, job).Gatherer(r.registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
