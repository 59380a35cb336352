package adapters

import (
	"net/http"

	"github.com/ppiankov/claimcheck/internal/cache"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// NewWebStrategies builds the configured web strategy chain: relay (when a
// relay URL is set), Instant Answer supplemented by the simulated stub,
// then the simulated stub itself
func NewWebStrategies(cfg model.WebConfig, client *http.Client, userAgent string, limiter *worker.Limiter) []WebStrategy {
	var strategies []WebStrategy
	if cfg.RelayURL != "" {
		strategies = append(strategies, NewRelayStrategy(client, cfg.RelayURL, cfg.RelayTimeout))
	}
	simulated := SimulatedStrategy{}
	strategies = append(strategies,
		NewInstantAnswerStrategy(client, cfg.InstantAnswerURL, userAgent, limiter, simulated),
		simulated,
	)
	return strategies
}

// NewSearchers builds the encyclopedia and web searchers from config,
// sharing one HTTP client, one rate limiter and one cache
func NewSearchers(cfg *model.Config, client *http.Client, limiter *worker.Limiter, c cache.Cache) (encyclopedia, web Searcher) {
	userAgent := cfg.HTTP.UserAgent

	encyclopedia = NewWikipediaAdapter(cfg.Search.Wikipedia, client, userAgent, limiter)
	web = NewWebAdapter(cfg.Search.Web.Limit, NewWebStrategies(cfg.Search.Web, client, userAgent, limiter)...)

	// Zero TTL lets each cache layer apply its own expiry
	return NewCachedSearcher(encyclopedia, c, 0), NewCachedSearcher(web, c, 0)
}
