// File: internal/metrics/metrics.go

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	providerCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gigscout",
		Name:      "reddit_requests_total",
		Help:      "Reddit search requests by subreddit and outcome",
	}, []string{"subreddit", "outcome"})

	providerDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "gigscout",
		Name:      "reddit_request_duration_seconds",
		Help:      "Time spent on individual Reddit search requests",
	})

	searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gigscout",
		Name:      "searches_total",
		Help:      "Concert searches by mode",
	}, []string{"mode"})
)

func init() {
	prometheus.MustRegister(providerCalls, providerDuration, searches)
}

// ObserveProviderCall records one Reddit API request.
func ObserveProviderCall(subreddit string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	providerCalls.WithLabelValues(subreddit, outcome).Inc()
	providerDuration.Observe(elapsed.Seconds())
}

// CountSearch records one orchestrated search by mode.
func CountSearch(mode string) {
	searches.WithLabelValues(mode).Inc()
}

// Handler exposes the default registry in Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
