package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "sales_insights"

// Collector exposes the service's Prometheus metrics. A disabled collector
// still registers its series but records nothing.
type Collector struct {
	enabled bool

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Insight computation metrics
	insightDuration *prometheus.HistogramVec

	// Export metrics
	exportsTotal *prometheus.CounterVec
	exportBytes  prometheus.Counter

	// Dataset metrics
	datasetRows     prometheus.Gauge
	datasetColumns  prometheus.Gauge
	datasetMemoryMB prometheus.Gauge

	// System metrics
	systemCPU    prometheus.Gauge
	systemMemory prometheus.Gauge
	systemDisk   prometheus.Gauge
}

// NewCollector creates and registers the Prometheus metric series.
func NewCollector(enabled bool) *Collector {
	return &Collector{
		enabled: enabled,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		insightDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_insight_duration_seconds",
				Help:    "Insight computation duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"kind"},
		),

		exportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_exports_total",
				Help: "Total number of completed exports",
			},
			[]string{"compressed"},
		),
		exportBytes: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_export_bytes_total",
				Help: "Total bytes written by exports",
			},
		),

		datasetRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_dataset_rows",
				Help: "Row count of the loaded dataset",
			},
		),
		datasetColumns: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_dataset_columns",
				Help: "Column count of the loaded dataset",
			},
		),
		datasetMemoryMB: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_dataset_memory_mb",
				Help: "Estimated in-memory size of the loaded dataset in MB",
			},
		),

		systemCPU: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_system_cpu_usage_percent",
				Help: "System CPU usage percentage",
			},
		),
		systemMemory: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_system_memory_usage_percent",
				Help: "System memory usage percentage",
			},
		),
		systemDisk: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_system_disk_usage_percent",
				Help: "System disk usage percentage",
			},
		),
	}
}

// RecordHTTPRequest records one handled HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if !c.enabled {
		return
	}
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordInsight records the duration of one insight computation.
func (c *Collector) RecordInsight(kind string, duration time.Duration) {
	if !c.enabled {
		return
	}
	c.insightDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordExport records one completed export.
func (c *Collector) RecordExport(compressed bool, bytes int) {
	if !c.enabled {
		return
	}
	c.exportsTotal.WithLabelValues(strconv.FormatBool(compressed)).Inc()
	c.exportBytes.Add(float64(bytes))
}

// SetDatasetInfo records the shape of the currently loaded snapshot.
func (c *Collector) SetDatasetInfo(rows, columns int, memoryMB float64) {
	if !c.enabled {
		return
	}
	c.datasetRows.Set(float64(rows))
	c.datasetColumns.Set(float64(columns))
	c.datasetMemoryMB.Set(memoryMB)
}

// RecordSystemResource records sampled host resource usage.
func (c *Collector) RecordSystemResource(cpu, memory, disk float64) {
	if !c.enabled {
		return
	}
	c.systemCPU.Set(cpu)
	c.systemMemory.Set(memory)
	c.systemDisk.Set(disk)
}
