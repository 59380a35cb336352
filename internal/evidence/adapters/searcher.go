// Package adapters queries the evidence sources consulted for each claim:
// the Wikipedia search API and a chain of web search strategies. Adapters
// never fail; a source that cannot be reached contributes no records.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// maxResponseBytes bounds search API payloads
const maxResponseBytes = 2 << 20

// Searcher returns evidence records for a query. Failures are logged and
// yield an empty slice.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) []model.EvidenceRecord
}

// fetchJSON sends req after rate limit clearance and decodes a 200 JSON
// response into v
func fetchJSON(client *http.Client, limiter *worker.Limiter, req *http.Request, v any) error {
	if err := limiter.Wait(req.Context(), req.URL.String()); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, body)
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// observe records the outcome of one search attempt
func observe(source, strategy string, n int, err error) {
	outcome := metrics.OutcomeHit
	switch {
	case err != nil:
		outcome = metrics.OutcomeFailure
	case n == 0:
		outcome = metrics.OutcomeEmpty
	}
	metrics.SearchRequests.WithLabelValues(source, strategy, outcome).Inc()
}

// tag stamps kind on every record and caps the slice at limit
func tag(records []model.EvidenceRecord, kind model.SourceKind, limit int) []model.EvidenceRecord {
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]model.EvidenceRecord, len(records))
	for i, r := range records {
		r.Kind = kind
		out[i] = r
	}
	return out
}

// empty is the non-nil result of a search that found nothing
func empty() []model.EvidenceRecord {
	return []model.EvidenceRecord{}
}

// compile-time interface checks
var (
	_ Searcher = (*WikipediaAdapter)(nil)
	_ Searcher = (*WebAdapter)(nil)
	_ Searcher = (*CachedSearcher)(nil)
)
