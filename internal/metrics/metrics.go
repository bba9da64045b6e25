// README: Prometheus collector for the matching and maps layers.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Searches       prometheus.Counter
	SearchDuration prometheus.Histogram

	// Classifications counts per-candidate outcomes:
	// exact|along_route|partial_detour|no_match|error.
	Classifications *prometheus.CounterVec

	GeocodeCacheHits prometheus.Counter
	UpstreamErrors   *prometheus.CounterVec // api label: geocode|directions|distance_matrix
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartride_searches_total",
			Help: "Total ride searches processed by the matching engine.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "smartride_search_duration_seconds",
			Help:    "Wall time of one whole matching call, fan-out included.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartride_classifications_total",
			Help: "Per-candidate classification outcomes.",
		}, []string{"outcome"}),
		GeocodeCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartride_geocode_cache_hits_total",
			Help: "Geocode lookups served from the Redis cache.",
		}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartride_upstream_errors_total",
			Help: "Failed calls to the Google Maps APIs.",
		}, []string{"api"}),
	}

	reg.MustRegister(
		c.Searches, c.SearchDuration, c.Classifications,
		c.GeocodeCacheHits, c.UpstreamErrors,
	)
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
