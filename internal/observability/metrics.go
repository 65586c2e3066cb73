package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a run.
type Metrics struct {
	LinesRead         prometheus.Counter
	RecordsAggregated prometheus.Counter
	ParseErrors       *prometheus.CounterVec // labels: reason={malformed_line,bad_field}
	FilesProcessed    prometheus.Counter
	StatesDiscovered  prometheus.Gauge
	RunInProgress     prometheus.Gauge

	FileProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "lines_read_total",
			Help:      "Total lines read from the input files.",
		}),
		RecordsAggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "records_aggregated_total",
			Help:      "Total records folded into a state summary.",
		}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "parse_errors_total",
			Help:      "Lines skipped because they could not be decoded, by reason.",
		}, []string{"reason"}),
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "files_processed_total",
			Help:      "Input files fully streamed.",
		}),
		StatesDiscovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate",
			Name:      "states_discovered",
			Help:      "Distinct state codes seen so far.",
		}),
		RunInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate",
			Name:      "run_in_progress",
			Help:      "1 while input files are being streamed, 0 otherwise.",
		}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate",
			Name:      "file_processing_duration_seconds",
			Help:      "Duration of streaming one input file end to end.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}),
	}

	prometheus.MustRegister(
		m.LinesRead,
		m.RecordsAggregated,
		m.ParseErrors,
		m.FilesProcessed,
		m.StatesDiscovered,
		m.RunInProgress,
		m.FileProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LinesRead:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate", Name: "lines_read_total"}),
		RecordsAggregated:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate", Name: "records_aggregated_total"}),
		ParseErrors:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate", Name: "parse_errors_total"}, []string{"reason"}),
		FilesProcessed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate", Name: "files_processed_total"}),
		StatesDiscovered:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate", Name: "states_discovered"}),
		RunInProgress:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate", Name: "run_in_progress"}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate", Name: "file_processing_duration_seconds"}),
	}
}
