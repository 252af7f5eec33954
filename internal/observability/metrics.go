package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the OpenAlex MCP server.
// Metrics are organized by subsystem: tool invocations, upstream API
// requests, and PDF downloads. All collectors are registered via promauto
// with the default Prometheus registry.
type Metrics struct {
	// ToolCallsTotal counts tool invocations, labeled by tool name.
	ToolCallsTotal *prometheus.CounterVec

	// ToolErrorsTotal counts tool invocations that surfaced an error text,
	// labeled by tool name.
	ToolErrorsTotal *prometheus.CounterVec

	// ToolDuration observes tool invocation duration in seconds, labeled by tool name.
	ToolDuration *prometheus.HistogramVec

	// UpstreamRequestsTotal counts HTTP requests to the OpenAlex API, labeled by endpoint.
	UpstreamRequestsTotal *prometheus.CounterVec

	// UpstreamRequestsFailed counts failed upstream requests, labeled by endpoint and error kind.
	UpstreamRequestsFailed *prometheus.CounterVec

	// UpstreamRequestDuration observes upstream request duration in seconds, labeled by endpoint.
	UpstreamRequestDuration *prometheus.HistogramVec

	// UpstreamInFlight tracks the number of in-flight upstream requests.
	// Bounded by the admission gate.
	UpstreamInFlight prometheus.Gauge

	// DownloadsTotal counts PDF download attempts.
	DownloadsTotal prometheus.Counter

	// DownloadsFailed counts PDF downloads that failed, labeled by failure kind.
	DownloadsFailed *prometheus.CounterVec

	// DownloadBytes observes the size of downloaded PDFs in bytes.
	DownloadBytes prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ToolCallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool invocations",
		}, []string{"tool"}),
		ToolErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_errors_total",
			Help:      "Total number of tool invocations that returned an error text",
		}, []string{"tool"}),
		ToolDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "Duration of MCP tool invocations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		UpstreamRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of HTTP requests to the OpenAlex API",
		}, []string{"endpoint"}),
		UpstreamRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_failed_total",
			Help:      "Total number of failed OpenAlex API requests",
		}, []string{"endpoint", "kind"}),
		UpstreamRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of OpenAlex API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		UpstreamInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_in_flight_requests",
			Help:      "Number of in-flight OpenAlex API requests",
		}),
		DownloadsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_downloads_total",
			Help:      "Total number of PDF download attempts",
		}),
		DownloadsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_downloads_failed_total",
			Help:      "Total number of failed PDF downloads",
		}, []string{"kind"}),
		DownloadBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_download_bytes",
			Help:      "Size of downloaded PDFs in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),
	}
}
