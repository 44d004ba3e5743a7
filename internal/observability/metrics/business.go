package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Content gauges, refreshed by the worker.
var (
	NewsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "news_total",
		Help: "Total number of news items in the database",
	})

	CommentsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "comments_total",
		Help: "Total number of comments in the database",
	})

	NotesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notes_total",
		Help: "Total number of notes in the database",
	})

	UsersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "users_total",
		Help: "Total number of registered users",
	})
)

// Mutation counters, recorded by the HTTP handlers.
var (
	CommentMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comment_mutations_total",
			Help: "Comment create/update/delete attempts by result",
		},
		[]string{"action", "result"},
	)

	NoteMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "note_mutations_total",
			Help: "Note create/update/delete attempts by result",
		},
		[]string{"action", "result"},
	)

	AuthRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Login and signup attempts by result",
		},
		[]string{"action", "result"},
	)
)

// Result label values.
const (
	ResultSuccess   = "success"
	ResultRejected  = "rejected"
	ResultForbidden = "forbidden"
	ResultError     = "error"
	ResultThrottled = "throttled"
)

// RecordCommentMutation counts a comment action ("create", "update", "delete").
func RecordCommentMutation(action, result string) {
	CommentMutations.WithLabelValues(action, result).Inc()
}

// RecordNoteMutation counts a note action ("create", "update", "delete").
func RecordNoteMutation(action, result string) {
	NoteMutations.WithLabelValues(action, result).Inc()
}

// RecordAuthRequest counts a login or signup attempt.
func RecordAuthRequest(action, result string) {
	AuthRequests.WithLabelValues(action, result).Inc()
}

// ContentCounts is a snapshot of table sizes.
type ContentCounts struct {
	News     int64
	Comments int64
	Notes    int64
	Users    int64
}

// UpdateContentTotals sets the content gauges from c.
func UpdateContentTotals(c ContentCounts) {
	NewsTotal.Set(float64(c.News))
	CommentsTotal.Set(float64(c.Comments))
	NotesTotal.Set(float64(c.Notes))
	UsersTotal.Set(float64(c.Users))
}
