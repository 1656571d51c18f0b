// Package metrics records Prometheus metrics for table ingestion, lookups
// and HTTP requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// Registry is a metrics registry that can also be scraped.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Recorder implements core.Observer and records HTTP request metrics.
type Recorder struct {
	gatherer prometheus.Gatherer

	tableLoads     *prometheus.CounterVec
	tableRows      *prometheus.GaugeVec
	rowsDropped    *prometheus.CounterVec
	sourceBytes    *prometheus.CounterVec
	loadDuration   *prometheus.HistogramVec
	sourceFailures *prometheus.CounterVec
	lookups        *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the catalog metrics with reg.
func New(reg Registry) *Recorder {
	f := promauto.With(reg)

	return &Recorder{
		gatherer: reg,

		// Ingestion metrics
		tableLoads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_table_loads_total",
				Help: "Total number of table loads",
			},
			[]string{"table", "cached"},
		),
		tableRows: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_table_rows",
				Help: "Rows in the current table",
			},
			[]string{"table"},
		),
		rowsDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_rows_dropped_total",
				Help: "Total number of rows dropped during ingestion",
			},
			[]string{"table", "reason"},
		),
		sourceBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_source_bytes_total",
				Help: "Total bytes read from sources",
			},
			[]string{"table"},
		),
		loadDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_table_load_duration_seconds",
				Help:    "Time taken to read and parse a table",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"table"},
		),
		sourceFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_source_failures_total",
				Help: "Total number of failed source reads",
			},
			[]string{"table"},
		),

		// Lookup metrics
		lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_lookups_total",
				Help: "Total number of parameter lookups by result",
			},
			[]string{"kind", "result"},
		),

		// HTTP metrics
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request durations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

var _ core.Observer = (*Recorder)(nil)

// TableLoaded implements core.Observer.
func (r *Recorder) TableLoaded(table string, stats core.ParseStats, bytes int64, cached bool, elapsed time.Duration) {
	r.tableLoads.WithLabelValues(table, strconv.FormatBool(cached)).Inc()
	r.tableRows.WithLabelValues(table).Set(float64(stats.Kept))
	r.sourceBytes.WithLabelValues(table).Add(float64(bytes))
	r.loadDuration.WithLabelValues(table).Observe(elapsed.Seconds())

	// Cached loads re-report the same rows; count drops once per parse.
	if !cached {
		r.rowsDropped.WithLabelValues(table, "malformed").Add(float64(stats.Malformed))
		r.rowsDropped.WithLabelValues(table, "rejected").Add(float64(stats.Rejected))
	}
}

// SourceFailed implements core.Observer.
func (r *Recorder) SourceFailed(table string) {
	r.sourceFailures.WithLabelValues(table).Inc()
	r.tableRows.WithLabelValues(table).Set(0)
}

// LookupCompleted implements core.Observer.
func (r *Recorder) LookupCompleted(kind core.TableKind, result core.MatchKind) {
	r.lookups.WithLabelValues(string(kind), result.String()).Inc()
}

// RecordRequest records metrics for one HTTP request.
func (r *Recorder) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	r.httpRequests.WithLabelValues(method, route, status).Inc()
	r.httpDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// classifyStatus groups a status code into its class.
func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

// Handler exposes the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
