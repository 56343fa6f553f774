package prometheus

import (
	"time"

	"medreq-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Entity CRUD metrics
	SupplierOperationsCounter prometheus.CounterVec
	MedicineOperationsCounter prometheus.CounterVec

	// Requirement list metrics
	RequirementOperationsCounter prometheus.CounterVec

	// Report metrics
	ReportsGeneratedCounter prometheus.Counter
	ReportPagesHistogram    prometheus.Histogram

	// Excel import metrics
	ImportRowsCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	SupplierOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_supplier_operations_total",
			Help: "Total number of supplier operations",
		},
		[]string{"operation"},
	)

	MedicineOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_medicine_operations_total",
			Help: "Total number of medicine operations",
		},
		[]string{"operation"},
	)

	RequirementOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_requirement_operations_total",
			Help: "Total number of requirement list operations",
		},
		[]string{"operation"},
	)

	ReportsGeneratedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_reports_generated_total",
			Help: "Total number of PDF reports generated",
		},
	)

	ReportPagesHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_report_pages",
			Help:    "Number of pages per generated report",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		},
	)

	ImportRowsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_import_rows_total",
			Help: "Total number of imported spreadsheet rows by outcome",
		},
		[]string{"kind", "outcome"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordSupplierOperation increments the counter for supplier operations
func RecordSupplierOperation(operation string) {
	SupplierOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordMedicineOperation increments the counter for medicine operations
func RecordMedicineOperation(operation string) {
	MedicineOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordRequirementOperation increments the counter for requirement list operations
func RecordRequirementOperation(operation string) {
	RequirementOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordReportGenerated records one generated report and its page count
func RecordReportGenerated(pages int) {
	ReportsGeneratedCounter.Inc()
	ReportPagesHistogram.Observe(float64(pages))
}

// RecordImportRow increments the import row counter for the given outcome
func RecordImportRow(kind, outcome string) {
	ImportRowsCounter.WithLabelValues(kind, outcome).Inc()
}
