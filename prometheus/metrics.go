package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"medicine-service/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter prometheus.Counter

	// Company context metrics
	CompanyContextMissingCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Catalog metrics
	MedicineOperationsCounter prometheus.CounterVec
	NameConflictsCounter      prometheus.CounterVec

	// Bulk import metrics
	ImportRowsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Company context metrics
	CompanyContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_company_context_missing_total",
			Help: "Total number of requests without company context",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Catalog operation metrics
	MedicineOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of medicine catalog operations",
		},
		[]string{"operation"},
	)

	// Name conflict metrics
	NameConflictsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_name_conflicts_total",
			Help: "Total number of medicine name conflicts by partition",
		},
		[]string{"partition"},
	)

	// Bulk import row outcomes
	ImportRowsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_import_rows_total",
			Help: "Total number of bulk import rows by outcome",
		},
		[]string{"outcome"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordMedicineOperation increments the counter for catalog operations
func RecordMedicineOperation(operation string) {
	MedicineOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordNameConflict increments the conflict counter for a partition
func RecordNameConflict(partition string) {
	NameConflictsCounter.WithLabelValues(partition).Inc()
}

// RecordImportRow increments the import row counter for an outcome
func RecordImportRow(outcome string) {
	ImportRowsCounter.WithLabelValues(outcome).Inc()
}

// RecordAuthError increments the authentication error counter
func RecordAuthError() {
	AuthErrorsCounter.Inc()
}
