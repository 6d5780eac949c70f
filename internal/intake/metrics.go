package intake

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	// UploadsTotal counts processed uploads by outcome.
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ncrp",
		Subsystem: "intake",
		Name:      "uploads_total",
		Help:      "Total number of complaint documents processed, labeled by status.",
	}, []string{"status"})

	// ProcessingDurationSeconds is the time from upload to stored record.
	ProcessingDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ncrp",
		Subsystem: "intake",
		Name:      "processing_duration_seconds",
		Help:      "Time to decode, resolve and store one complaint document.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"status"})

	// FieldsMissingTotal counts resolved records with an empty field.
	FieldsMissingTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ncrp",
		Subsystem: "intake",
		Name:      "fields_missing_total",
		Help:      "Total number of resolved records where a field could not be extracted, labeled by field.",
	}, []string{"field"})
)

// RegisterMetrics registers intake metrics with the default Prometheus
// registry. Safe to call multiple times.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(UploadsTotal, ProcessingDurationSeconds, FieldsMissingTotal)
	})
}
