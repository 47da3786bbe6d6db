// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// KoladaRequests counts outbound Kolada API calls by endpoint and outcome.
	KoladaRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motiongen_kolada_requests_total",
		Help: "Outbound Kolada API requests.",
	}, []string{"endpoint", "status"})

	// ScrapeFetches counts BRÅ page fetches by outcome.
	ScrapeFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motiongen_scrape_fetches_total",
		Help: "BRÅ statistics page fetches.",
	}, []string{"status"})

	// ScrapeCacheHits counts scrape cache lookups that were served from memory.
	ScrapeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motiongen_scrape_cache_hits_total",
		Help: "Scrape cache lookups served without a fetch.",
	})

	// ScrapeCacheMisses counts scrape cache lookups that required a fetch.
	ScrapeCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motiongen_scrape_cache_misses_total",
		Help: "Scrape cache lookups that triggered a fetch.",
	})

	// MotionsGenerated counts completed motion pipeline runs.
	MotionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motiongen_motions_generated_total",
		Help: "Motions generated through the full pipeline.",
	})

	// LLMCalls counts LLM completions by provider and outcome.
	LLMCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motiongen_llm_calls_total",
		Help: "LLM completion calls.",
	}, []string{"provider", "status"})
)
