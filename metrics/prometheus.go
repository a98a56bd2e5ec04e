package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics to track
var (
	PartyCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "party_count",
			Help: "Number of parties currently stored",
		},
	)
	PartyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "party_requests_total",
			Help: "Total number of party requests received",
		},
		[]string{"operation", "status"}, // Labels: operation (e.g. create), status (e.g. success, error)
	)
	InviteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "party_invite_requests_total",
			Help: "Total number of party invitation requests received",
		},
		[]string{"operation", "status"},
	)
)

// InitMetrics initializes and registers Prometheus metrics
func InitMetrics() {
	// Register metrics
	prometheus.MustRegister(PartyCount, PartyRequests, InviteRequests)
}

// ServeMetrics starts an HTTP server to expose metrics
func ServeMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			panic(err)
		}
	}()
}
