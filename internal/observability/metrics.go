package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// stream-consumption pipeline.
type Metrics struct {
	ChunksConsumed      prometheus.Counter
	ChunkBytes          prometheus.Counter
	ParseErrors         prometheus.Counter
	ReplicatesCompleted prometheus.Counter
	ResultsPublished    prometheus.Counter
	DatapointsGeocoded  prometheus.Counter
	PipelineRunning     prometheus.Gauge

	ChunkProcessingDuration prometheus.Histogram
	ReplicateDatapoints     prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ChunksConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim_etl",
			Name:      "chunks_consumed_total",
			Help:      "Total stream fragments pushed into the parser.",
		}),
		ChunkBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim_etl",
			Name:      "chunk_bytes_total",
			Help:      "Total bytes of stream text consumed.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim_etl",
			Name:      "parse_errors_total",
			Help:      "Malformed stream lines encountered.",
		}),
		ReplicatesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim_etl",
			Name:      "replicates_completed_total",
			Help:      "Replicates finalized from end-of-replicate markers.",
		}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim_etl",
			Name:      "results_published_total",
			Help:      "Completed replicate results written to the sink topic.",
		}),
		DatapointsGeocoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim_etl",
			Name:      "datapoints_geocoded_total",
			Help:      "Datapoints that received longitude/latitude attributes.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sim_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		ChunkProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sim_etl",
			Name:      "chunk_processing_duration_seconds",
			Help:      "Duration of one extract-parse-publish cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		ReplicateDatapoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sim_etl",
			Name:      "replicate_datapoints",
			Help:      "Number of datapoints per completed replicate.",
			Buckets:   []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),
	}

	prometheus.MustRegister(
		m.ChunksConsumed,
		m.ChunkBytes,
		m.ParseErrors,
		m.ReplicatesCompleted,
		m.ResultsPublished,
		m.DatapointsGeocoded,
		m.PipelineRunning,
		m.ChunkProcessingDuration,
		m.ReplicateDatapoints,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ChunksConsumed:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sim_etl", Name: "chunks_consumed_total"}),
		ChunkBytes:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sim_etl", Name: "chunk_bytes_total"}),
		ParseErrors:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sim_etl", Name: "parse_errors_total"}),
		ReplicatesCompleted:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sim_etl", Name: "replicates_completed_total"}),
		ResultsPublished:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sim_etl", Name: "results_published_total"}),
		DatapointsGeocoded:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sim_etl", Name: "datapoints_geocoded_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sim_etl", Name: "pipeline_running"}),
		ChunkProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sim_etl", Name: "chunk_processing_duration_seconds"}),
		ReplicateDatapoints:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sim_etl", Name: "replicate_datapoints"}),
	}
}
