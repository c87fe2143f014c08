package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joseph-ayodele/laptop-specs/internal/common"
)

type BatchMetrics struct {
	registry *prometheus.Registry

	documentsTotal    *prometheus.CounterVec
	documentDuration  *prometheus.HistogramVec
	documentsInFlight prometheus.Gauge
	fieldMissTotal    *prometheus.CounterVec
	violationsTotal   prometheus.Counter
	listingsTotal     *prometheus.CounterVec
}

func NewBatchMetrics(service string) *BatchMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "laptopspecs",
			Subsystem:   "batch",
			Name:        "documents_total",
			Help:        "Documents processed by status.",
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "laptopspecs",
			Subsystem:   "batch",
			Name:        "document_duration_seconds",
			Help:        "Per-document extraction duration in seconds by status.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)
	documentsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "laptopspecs",
			Subsystem:   "batch",
			Name:        "documents_in_flight",
			Help:        "Documents currently being extracted.",
			ConstLabels: constLabels,
		},
	)
	fieldMissTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "laptopspecs",
			Subsystem:   "fields",
			Name:        "miss_total",
			Help:        "Fields that fell back to their not-specified sentinel.",
			ConstLabels: constLabels,
		},
		[]string{"field"},
	)
	violationsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "laptopspecs",
			Subsystem:   "schema",
			Name:        "violations_total",
			Help:        "Schema violations reported by the validator.",
			ConstLabels: constLabels,
		},
	)
	listingsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "laptopspecs",
			Subsystem:   "listings",
			Name:        "pages_total",
			Help:        "Saved product pages parsed by status.",
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)

	registry.MustRegister(documentsTotal, documentDuration, documentsInFlight, fieldMissTotal, violationsTotal, listingsTotal)

	return &BatchMetrics{
		registry:          registry,
		documentsTotal:    documentsTotal,
		documentDuration:  documentDuration,
		documentsInFlight: documentsInFlight,
		fieldMissTotal:    fieldMissTotal,
		violationsTotal:   violationsTotal,
		listingsTotal:     listingsTotal,
	}
}

func (m *BatchMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *BatchMetrics) StartDocument() {
	m.documentsInFlight.Inc()
}

func (m *BatchMetrics) FinishDocument(status string, duration time.Duration, missing []string) {
	m.documentsInFlight.Dec()
	m.documentsTotal.WithLabelValues(status).Inc()
	m.documentDuration.WithLabelValues(status).Observe(duration.Seconds())
	for _, f := range missing {
		m.fieldMissTotal.WithLabelValues(f).Inc()
	}
}

// SkipDocument counts a document the batch left out without extracting it.
func (m *BatchMetrics) SkipDocument(status string) {
	m.documentsTotal.WithLabelValues(status).Inc()
}

func (m *BatchMetrics) SchemaViolations(n int) {
	if n > 0 {
		m.violationsTotal.Add(float64(n))
	}
}

func (m *BatchMetrics) ListingParsed(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.listingsTotal.WithLabelValues(status).Inc()
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *BatchMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return common.NewSerializationError(path, "write metrics", err)
	}
	return nil
}
