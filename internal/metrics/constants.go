package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Progression metric names
const (
	MetricNameCompletionsRecorded  = "galmaetgil_completions_recorded_total"
	MetricNameBadgesAwarded        = "galmaetgil_badges_awarded_total"
	MetricNameReviewsPosted        = "galmaetgil_reviews_posted_total"
	MetricNameCommentsPosted       = "galmaetgil_comments_posted_total"
	MetricNameRankingCacheLookups  = "galmaetgil_ranking_cache_lookups_total"
	MetricNameActiveSessions       = "galmaetgil_active_sessions"
	MetricNameWebSocketConnections = "galmaetgil_websocket_connections"
	MetricNameJournalWriteErrors   = "galmaetgil_journal_write_errors_total"
)

// Help text
const (
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight  = "Current number of HTTP requests being served"
	HelpTextCompletionsRecorded   = "Course completions recorded, split by first-time and repeat runs"
	HelpTextBadgesAwarded         = "Completion badges awarded by badge id"
	HelpTextReviewsPosted         = "Reviews posted"
	HelpTextCommentsPosted        = "Review comments posted"
	HelpTextRankingCacheLookups   = "Leaderboard cache lookups by result"
	HelpTextActiveSessions        = "Signed-in sessions currently held in memory"
	HelpTextWebSocketConnections  = "Open WebSocket connections"
	HelpTextJournalWriteErrors    = "Failed writes to the optional database journal by operation"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelFirstTime = "first_time"
	LabelBadge     = "badge"
	LabelResult    = "result"
	LabelOperation = "operation"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
