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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ResponsesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_responses_generated_total",
			Help: "Total advisory replies produced, by intent and language",
		},
		[]string{"intent", "language"},
	)

	ResponseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "advisory_response_duration_seconds",
			Help: "End-to-end pipeline latency per reply",
		},
		[]string{"intent"},
	)

	DatasetLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisory_dataset_load_failures_total",
			Help: "Snapshot loads that failed before the pipeline could run",
		},
	)

	SentimentReportsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_sentiment_reports_ingested_total",
			Help: "Report documents processed by the ingest worker, by outcome",
		},
		[]string{"outcome"},
	)

	SentimentAlertsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_sentiment_alerts_published_total",
			Help: "Alert notifications published by the sentiment scan, by channel",
		},
		[]string{"channel"},
	)
)
