package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueueJoins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_queue_joins_total",
		Help: "Queue join attempts by outcome.",
	}, []string{"outcome"})

	QueueTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_queue_transitions_total",
		Help: "Queue entries moved to a new status.",
	}, []string{"status"})

	QueueExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_queue_expired_total",
		Help: "Waiting entries marked no-show by the sweeper.",
	})

	LoyaltyPointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_loyalty_points_awarded_total",
		Help: "Loyalty points credited on completed visits.",
	})

	OfferClicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_offer_clicks_total",
		Help: "Recorded offer clicks.",
	})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_notifications_total",
		Help: "Customer-called notifications by transport and outcome.",
	}, []string{"transport", "outcome"})

	AuditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_audit_dropped_total",
		Help: "Audit events dropped because the buffer was full.",
	})

	QueueCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_queue_cache_total",
		Help: "Queue snapshot cache lookups by result.",
	}, []string{"result"})

	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salon_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
