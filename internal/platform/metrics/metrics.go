package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConversionMetrics holds the conversion counters and histograms.
// A nil *ConversionMetrics records nothing.
type ConversionMetrics struct {
	// ConversionsTotal counts converted queries by rate type, direction and outcome.
	ConversionsTotal *prometheus.CounterVec
	// CallDuration observes the duration of a single or batch conversion call.
	CallDuration *prometheus.HistogramVec
	// BatchSize observes the number of queries per batch.
	BatchSize prometheus.Histogram
	// CatalogSize observes the number of quotations loaded per call.
	CatalogSize prometheus.Histogram
}

// NewConversionMetrics registers the conversion metrics with reg.
func NewConversionMetrics(reg prometheus.Registerer) *ConversionMetrics {
	factory := promauto.With(reg)
	return &ConversionMetrics{
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fxengine",
				Name:      "conversions_total",
				Help:      "Number of conversion queries by rate type, direction and outcome",
			},
			[]string{"rate_type", "direction", "outcome"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fxengine",
				Name:      "conversion_call_duration_seconds",
				Help:      "Duration of conversion calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"operation"},
		),
		BatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "fxengine",
				Name:      "conversion_batch_size",
				Help:      "Number of queries per batch conversion",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
			},
		),
		CatalogSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "fxengine",
				Name:      "quotation_catalog_size",
				Help:      "Number of quotations loaded per conversion call",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
}

// RecordConversion counts one converted query. outcome is "ok" or a failure kind.
func (m *ConversionMetrics) RecordConversion(rateType, direction, outcome string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(rateType, direction, outcome).Inc()
}

// ObserveCall records the duration of a conversion call.
func (m *ConversionMetrics) ObserveCall(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.CallDuration.WithLabelValues(operation).Observe(seconds)
}

// ObserveBatchSize records the size of a batch.
func (m *ConversionMetrics) ObserveBatchSize(n int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(n))
}

// ObserveCatalogSize records the number of quotations a call worked on.
func (m *ConversionMetrics) ObserveCatalogSize(n int) {
	if m == nil {
		return
	}
	m.CatalogSize.Observe(float64(n))
}
