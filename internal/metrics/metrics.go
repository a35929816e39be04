package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plearn_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plearn_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	// Upstream model calls
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plearn_llm_requests_total",
			Help: "Total upstream model requests",
		},
		[]string{"operation", "outcome"}, // outcome: "ok" or "error"
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plearn_llm_request_duration_seconds",
			Help:    "Upstream model request latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	HistoryMessagesTrimmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plearn_history_messages_trimmed_total",
			Help: "Conversation messages dropped to fit the token budget",
		},
	)

	// Business metrics
	ChatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plearn_chat_replies_total",
			Help: "Total chat replies served",
		},
		[]string{"mode"},
	)

	TasksWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plearn_tasks_written_total",
			Help: "Total to-do writes",
		},
		[]string{"op"}, // "create", "update", "delete", "complete"
	)
)
