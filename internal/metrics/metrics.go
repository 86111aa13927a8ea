// Package metrics holds the Prometheus instruments for chain searches and
// word-list loading.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search status label values.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusTimeout  = "timeout"
	StatusCanceled = "canceled"
)

var (
	// searchTotal counts searches by kind and outcome
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiritori_search_total",
		Help: "Total chain searches by kind and status",
	}, []string{"kind", "status"})

	// searchDuration tracks search latency
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shiritori_search_duration_seconds",
		Help:    "Chain search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10), // 0.5ms to ~2min
	}, []string{"kind"})

	// searchResults tracks the number of chains (or counted units) returned
	searchResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shiritori_search_results",
		Help:    "Number of results returned per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"kind"})

	// collectionWords reports the size of each loaded collection
	collectionWords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shiritori_collection_words",
		Help: "Number of distinct words per loaded collection",
	}, []string{"collection"})
)

// Status maps a search error to a status label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	default:
		return StatusError
	}
}

// ObserveSearch records one completed search.
func ObserveSearch(kind string, elapsed time.Duration, results int, err error) {
	status := Status(err)
	searchTotal.WithLabelValues(kind, status).Inc()
	searchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if status == StatusOK {
		searchResults.WithLabelValues(kind).Observe(float64(results))
	}
}

// SetCollectionWords records the size of a loaded collection.
func SetCollectionWords(collection string, words int) {
	collectionWords.WithLabelValues(collection).Set(float64(words))
}

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
