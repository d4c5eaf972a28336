package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// outcome is "success" or a lower-cased validation kind.
	QuotesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mortgage_quotes_total",
			Help: "Total number of mortgage quote calculations by outcome",
		},
		[]string{"outcome"},
	)

	ContactSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of simulated contact form submissions",
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"method"},
	)
)
