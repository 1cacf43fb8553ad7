// Package metrics exports reminder store telemetry to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "reminder_store"

// StoreObserver receives one call per completed store operation.
type StoreObserver interface {
	RecordOperation(op string, duration time.Duration, err error)
}

// PrometheusObserver records operation latency and failures per operation.
type PrometheusObserver struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewPrometheusObserver registers the store metrics on reg, reusing
// collectors that are already registered.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Latency of reminder store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Count of failed reminder store operations.",
	}, []string{"operation"})

	o := &PrometheusObserver{duration: duration, errors: errs}
	if err := reg.Register(duration); err != nil {
		existing, ok := alreadyRegistered[*prometheus.HistogramVec](err)
		if !ok {
			return nil, fmt.Errorf("register store duration metric: %w", err)
		}
		o.duration = existing
	}
	if err := reg.Register(errs); err != nil {
		existing, ok := alreadyRegistered[*prometheus.CounterVec](err)
		if !ok {
			return nil, fmt.Errorf("register store error metric: %w", err)
		}
		o.errors = existing
	}
	return o, nil
}

func alreadyRegistered[T prometheus.Collector](err error) (T, bool) {
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		c, ok := are.ExistingCollector.(T)
		return c, ok
	}
	var zero T
	return zero, false
}

func (o *PrometheusObserver) RecordOperation(op string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.duration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		o.errors.WithLabelValues(op).Inc()
	}
}

// NopObserver discards every observation.
type NopObserver struct{}

func (NopObserver) RecordOperation(string, time.Duration, error) {}

var (
	_ StoreObserver = (*PrometheusObserver)(nil)
	_ StoreObserver = NopObserver{}
)
