package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Progression Metrics
var (
	CompletionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCompletionsRecorded,
			Help: HelpTextCompletionsRecorded,
		},
		[]string{LabelFirstTime},
	)

	BadgesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgesAwarded,
			Help: HelpTextBadgesAwarded,
		},
		[]string{LabelBadge},
	)

	ReviewsPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReviewsPosted,
			Help: HelpTextReviewsPosted,
		},
	)

	CommentsPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCommentsPosted,
			Help: HelpTextCommentsPosted,
		},
	)

	RankingCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRankingCacheLookups,
			Help: HelpTextRankingCacheLookups,
		},
		[]string{LabelResult},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWebSocketConnections,
			Help: HelpTextWebSocketConnections,
		},
	)

	JournalWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJournalWriteErrors,
			Help: HelpTextJournalWriteErrors,
		},
		[]string{LabelOperation},
	)
)
