// Package metrics exposes Prometheus collectors for the prediction path.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cerviguard"

// Metrics holds the prediction collectors
type Metrics struct {
	predictions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served, by backend and predicted label.",
		}, []string{"backend", "prediction"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_rejections_total",
			Help:      "Prediction requests rejected, by backend and reason.",
		}, []string{"backend", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent computing a prediction.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"backend"}),
	}

	for _, c := range []prometheus.Collector{m.predictions, m.rejections, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObservePrediction records a served prediction
func (m *Metrics) ObservePrediction(backend string, label int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(backend, strconv.Itoa(label)).Inc()
	m.duration.WithLabelValues(backend).Observe(elapsed.Seconds())
}

// ObserveRejection records a request that did not produce a prediction
func (m *Metrics) ObserveRejection(backend, reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(backend, reason).Inc()
}
