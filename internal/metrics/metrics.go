package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Leaderboards
	LeaderboardRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_requests_total",
			Help: "Leaderboard rank requests by source and outcome",
		},
		[]string{"source", "outcome"}, // batch|group, ok|error|forbidden
	)
	RowsRanked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leaderboard_rows_ranked_total",
			Help: "Total rows ranked",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint handler
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(LeaderboardRequests)
		prometheus.MustRegister(RowsRanked)
	})
}
