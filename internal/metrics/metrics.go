package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// MailTotal counts verification emails by outcome.
	MailTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_mail_total",
			Help: "Total number of emails handed to the mailer",
		},
		[]string{"status"},
	)
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_websocket_clients",
			Help: "Number of connected websocket clients",
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
