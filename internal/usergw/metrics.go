package usergw

import "github.com/prometheus/client_golang/prometheus"

var (
	lookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "user_gateway_requests_total", Help: "User service calls by outcome"},
		[]string{"op", "outcome"},
	)
	lookupLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_gateway_request_duration_seconds",
			Help:    "Latency of user service calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"},
	)
)

func init() { prometheus.MustRegister(lookupTotal, lookupLatency) }
