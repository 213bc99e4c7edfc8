package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medres_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// NotificationTranslations counts rendered notification messages by locale and the rule that matched.
	NotificationTranslations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medres_notification_translations_total",
			Help: "Notification messages rendered, by locale and matched translation rule",
		},
		[]string{"locale", "rule"},
	)

	// DateReformatFailures counts backend date strings that could not be parsed for a locale.
	DateReformatFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medres_date_reformat_failures_total",
			Help: "Backend date strings left untranslated because they did not parse",
		},
		[]string{"locale"},
	)

	// RealtimeEvents counts notification events pushed to websocket subscribers.
	RealtimeEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medres_realtime_events_total",
			Help: "Realtime notification events broadcast, by event name",
		},
		[]string{"event"},
	)

	// RoleChecks counts role guard evaluations and their outcome (allowed|denied).
	RoleChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medres_role_checks_total",
			Help: "Total number of role guard checks",
		},
		[]string{"result"},
	)

	// NotificationsPurged counts rows removed by retention jobs.
	NotificationsPurged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medres_notifications_purged_total",
			Help: "Notifications deleted by retention jobs",
		},
		[]string{"job"},
	)
)
