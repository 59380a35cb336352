// Package metrics holds the Prometheus collectors shared by the pipeline
// and the relay service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for search and cache counters
const (
	OutcomeHit     = "hit"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
	OutcomeMiss    = "miss"
)

var (
	// LLMCompletionDuration tracks completion latency by provider and outcome
	LLMCompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "claimcheck_llm_completion_duration_seconds",
		Help:    "Language model completion duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2m
	}, []string{"provider", "outcome"})

	// ExtractedClaims counts claims produced by each extraction strategy
	ExtractedClaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimcheck_extracted_claims_total",
		Help: "Total claims extracted by strategy",
	}, []string{"strategy"})

	// ExtractionChunkFailures counts chunks skipped after a model failure
	ExtractionChunkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "claimcheck_extraction_chunk_failures_total",
		Help: "Total extraction chunks that failed and were skipped",
	})

	// SearchRequests counts evidence searches by source, strategy and outcome
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimcheck_search_requests_total",
		Help: "Total evidence searches by source, strategy and outcome",
	}, []string{"source", "strategy", "outcome"})

	// CacheLookups counts search cache lookups
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimcheck_cache_lookups_total",
		Help: "Total search cache lookups by cache and result",
	}, []string{"cache", "result"})

	// Verifications counts finished claim verifications by final status
	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimcheck_verifications_total",
		Help: "Total claim verifications by status",
	}, []string{"status"})

	// VerificationDuration tracks end-to-end verification latency per claim
	VerificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "claimcheck_verification_duration_seconds",
		Help:    "Claim verification duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// StatusCorrections counts verdicts changed by reconciliation
	StatusCorrections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimcheck_status_corrections_total",
		Help: "Total verdict categories corrected from their explanation",
	}, []string{"from", "to"})

	// InterpretationFallbacks counts heuristic interpretations used in place of the model
	InterpretationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "claimcheck_interpretation_fallbacks_total",
		Help: "Total interpretations that fell back to the source-count heuristic",
	})

	// Publications counts claim publications by outcome
	Publications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimcheck_publications_total",
		Help: "Total claim publications by outcome",
	}, []string{"outcome"})

	// RelayRequests counts relay HTTP requests by route and status code
	RelayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimcheck_relay_requests_total",
		Help: "Total relay requests by route and status code",
	}, []string{"route", "code"})

	// RelaySearchDuration tracks relay search latency by backend
	RelaySearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "claimcheck_relay_search_duration_seconds",
		Help:    "Relay search duration in seconds by backend",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"backend"})
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
