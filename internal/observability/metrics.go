package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the METAR pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Decoding metrics.
	ReportsDecoded       *prometheus.CounterVec // labels: flight_category={VFR,MVFR,IFR,LIFR,unknown}
	ReportParseErrors    prometheus.Histogram
	ReportsWithoutGroups prometheus.Counter

	// Station directory metrics.
	StationRequests    *prometheus.CounterVec // labels: outcome={success,not_found,error}
	StationCache       *prometheus.CounterVec // labels: result={hit,miss}
	StationAPIDuration prometheus.Histogram
	StationEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metar_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_etl",
			Name:      "batch_size",
			Help:      "Number of raw reports per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ReportsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "reports_decoded_total",
			Help:      "Decoded METAR reports by flight category.",
		}, []string{"flight_category"}),
		ReportParseErrors: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_etl",
			Name:      "report_parse_errors",
			Help:      "Number of parse errors per decoded report.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		ReportsWithoutGroups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "reports_without_groups_total",
			Help:      "Reports in which no METAR group was recognized.",
		}),
		StationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "station_requests_total",
			Help:      "Station directory API requests by outcome.",
		}, []string{"outcome"}),
		StationCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "station_cache_total",
			Help:      "Station cache lookups by result.",
		}, []string{"result"}),
		StationAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_etl",
			Name:      "station_api_duration_seconds",
			Help:      "Station directory API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		StationEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metar_etl",
			Name:      "station_lookup_enabled",
			Help:      "1 when station enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ReportsDecoded,
		m.ReportParseErrors,
		m.ReportsWithoutGroups,
		m.StationRequests,
		m.StationCache,
		m.StationAPIDuration,
		m.StationEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "metar_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_etl", Name: "batch_processing_duration_seconds"}),
		ReportsDecoded:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "metar_etl", Name: "reports_decoded_total"}, []string{"flight_category"}),
		ReportParseErrors:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_etl", Name: "report_parse_errors"}),
		ReportsWithoutGroups:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "reports_without_groups_total"}),
		StationRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "metar_etl", Name: "station_requests_total"}, []string{"outcome"}),
		StationCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "metar_etl", Name: "station_cache_total"}, []string{"result"}),
		StationAPIDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_etl", Name: "station_api_duration_seconds"}),
		StationEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "metar_etl", Name: "station_lookup_enabled"}),
	}
}
