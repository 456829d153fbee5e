// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordpress_tool_calls_total",
			Help: "Total number of tool calls by outcome",
		},
		[]string{"tool", "outcome"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wordpress_tool_call_duration_seconds",
			Help: "Duration of tool calls in seconds",
		},
		[]string{"tool"},
	)

	ToolCallsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wordpress_tool_calls_active",
			Help: "Number of in-flight tool calls",
		},
		[]string{"tool"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordpress_worker_jobs_completed_total",
			Help: "Total number of zeebe jobs completed",
		},
		[]string{"task_type"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wordpress_worker_job_duration_seconds",
			Help: "Duration of zeebe job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wordpress_worker_jobs_active",
			Help: "Number of zeebe jobs being processed",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordpress_worker_jobs_failed_total",
			Help: "Total number of zeebe jobs failed",
		},
		[]string{"task_type", "error_code"},
	)

	PipelineEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordpress_pipeline_events_total",
			Help: "Image pipeline events by kind",
		},
		[]string{"event"},
	)

	// RemoteRequests is partitioned by the promhttp round tripper labels.
	RemoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordpress_remote_requests_total",
			Help: "Requests sent to WordPress REST endpoints",
		},
		[]string{"code", "method"},
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordpress_remote_request_duration_seconds",
			Help:    "Latency of WordPress REST requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RemoteRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wordpress_remote_requests_in_flight",
			Help: "WordPress REST requests currently in flight",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordpress_post_cache_lookups_total",
			Help: "Post cache lookups by result",
		},
		[]string{"result"},
	)
)
