// Package relay implements the web search relay: a small HTTP service that
// answers POST /search with results from an external search command or a
// built-in DuckDuckGo scraper.
package relay

import (
	"context"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// DefaultLimit caps the number of results per search
const DefaultLimit = 5

// Backend produces web results for a query
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]model.RelayResult, error)
}

// normalize fills missing fields the way relay clients expect and caps
// the list at limit
func normalize(results []model.RelayResult, limit int) []model.RelayResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]model.RelayResult, 0, min(len(results), limit))
	for _, r := range results {
		if len(out) == limit {
			break
		}
		r.Title = strings.TrimSpace(r.Title)
		r.Snippet = strings.TrimSpace(r.Snippet)
		r.URL = strings.TrimSpace(r.URL)
		if r.Title == "" {
			r.Title = "No Title"
		}
		if r.Snippet == "" {
			r.Snippet = "No Description"
		}
		out = append(out, r)
	}
	return out
}
