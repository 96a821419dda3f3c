package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of document store operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation", "collection"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by component and type",
		},
		[]string{"component", "type"},
	)

	registrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registered accounts",
		},
	)
)

// TrackDBOperation returns a timer recording the duration of a store
// operation. Observe with defer timer.ObserveDuration().
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(dbOperationDuration.WithLabelValues(operation, collection))
}

// TrackError increments the error counter for a component/type pair.
func TrackError(component, errType string) {
	errorsTotal.WithLabelValues(component, errType).Inc()
}

// TrackRegistration counts a successful account registration.
func TrackRegistration() {
	registrationsTotal.Inc()
}
