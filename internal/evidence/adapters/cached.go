package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ppiankov/claimcheck/internal/cache"
	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/model"
)

// CachedSearcher memoizes non-empty results of another searcher, keyed by
// searcher name and query. Empty results are not cached so a source that
// was briefly unreachable is asked again next time.
type CachedSearcher struct {
	inner Searcher
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSearcher wraps inner. A nil cache returns inner unchanged.
func NewCachedSearcher(inner Searcher, c cache.Cache, ttl time.Duration) Searcher {
	if c == nil {
		return inner
	}
	return &CachedSearcher{inner: inner, cache: c, ttl: ttl}
}

// Name returns the wrapped searcher's name
func (c *CachedSearcher) Name() string {
	return c.inner.Name()
}

// Search serves from cache or delegates
func (c *CachedSearcher) Search(ctx context.Context, query string) []model.EvidenceRecord {
	key := cache.Key(c.inner.Name(), query)

	if data, found := c.cache.Get(key); found {
		var records []model.EvidenceRecord
		if err := json.Unmarshal(data, &records); err == nil {
			metrics.CacheLookups.WithLabelValues(c.inner.Name(), metrics.OutcomeHit).Inc()
			return records
		}
		_ = c.cache.Delete(key)
	}
	metrics.CacheLookups.WithLabelValues(c.inner.Name(), metrics.OutcomeMiss).Inc()

	records := c.inner.Search(ctx, query)
	if len(records) == 0 {
		return records
	}

	data, err := json.Marshal(records)
	if err == nil {
		err = c.cache.Set(key, data, c.ttl)
	}
	if err != nil {
		slog.Debug("search cache write failed", "source", c.inner.Name(), "error", err)
	}
	return records
}
