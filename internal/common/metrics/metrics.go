// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	KeywordResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_resolutions_total",
			Help: "Keyword landing resolutions by outcome",
		},
		[]string{"outcome"},
	)

	KeywordPageCorrections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyword_page_corrections_total",
			Help: "Out-of-range page requests rewritten to page 1",
		},
	)

	CatalogFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_failures_total",
			Help: "Catalog fetches that degraded to an empty list",
		},
		[]string{"source"},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Catalog cache lookups by collection and result",
		},
		[]string{"collection", "result"},
	)

	EnquiriesSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiries_submitted_total",
			Help: "Enquiry submissions by status",
		},
		[]string{"status"},
	)
)
