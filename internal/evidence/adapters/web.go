package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// WebStrategy is one way of searching the web. Unlike a Searcher it reports
// failures so the adapter can move on to the next strategy.
type WebStrategy interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.EvidenceRecord, error)
}

// WebAdapter tries its strategies in order and returns the first non-empty
// result set, capped at limit and tagged as web evidence
type WebAdapter struct {
	strategies []WebStrategy
	limit      int
}

// NewWebAdapter creates a web searcher over an ordered strategy chain
func NewWebAdapter(limit int, strategies ...WebStrategy) *WebAdapter {
	if limit <= 0 {
		limit = 3
	}
	return &WebAdapter{strategies: strategies, limit: limit}
}

// Name returns the adapter name
func (w *WebAdapter) Name() string {
	return "web"
}

// Search runs the strategy chain
func (w *WebAdapter) Search(ctx context.Context, query string) []model.EvidenceRecord {
	for _, strategy := range w.strategies {
		records, err := strategy.Search(ctx, query)
		observe(w.Name(), strategy.Name(), len(records), err)

		if err != nil {
			slog.Warn("web search strategy failed", "strategy", strategy.Name(), "error", err)
			if ctx.Err() != nil {
				return empty()
			}
			continue
		}
		if len(records) == 0 {
			slog.Debug("web search strategy found nothing", "strategy", strategy.Name())
			continue
		}

		slog.Debug("web search strategy succeeded", "strategy", strategy.Name(), "results", len(records))
		return tag(records, model.SourceWeb, w.limit)
	}
	return empty()
}

// RelayStrategy queries the claimcheck relay service
type RelayStrategy struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

// NewRelayStrategy creates a strategy posting to <relayURL>/search. The
// wait for the relay is bounded by timeout (30s by default), even when the
// shared client carries a shorter timeout of its own.
func NewRelayStrategy(client *http.Client, relayURL string, timeout time.Duration) *RelayStrategy {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if client.Timeout > 0 && client.Timeout < timeout {
		relayClient := *client
		relayClient.Timeout = 0
		client = &relayClient
	}
	return &RelayStrategy{
		client:   client,
		endpoint: strings.TrimRight(relayURL, "/") + "/search",
		timeout:  timeout,
	}
}

// Name returns the strategy name
func (r *RelayStrategy) Name() string {
	return "relay"
}

// Search posts the query to the relay
func (r *RelayStrategy) Search(ctx context.Context, query string) ([]model.EvidenceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var data model.RelayResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&data)

	if resp.StatusCode != http.StatusOK {
		if data.Error != "" {
			return nil, fmt.Errorf("relay error: %d: %s", resp.StatusCode, data.Error)
		}
		return nil, fmt.Errorf("relay error: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !data.Success {
		if data.Error == "" {
			data.Error = "unknown error"
		}
		return nil, fmt.Errorf("relay search failed: %s", data.Error)
	}

	records := make([]model.EvidenceRecord, 0, len(data.Results))
	for _, result := range data.Results {
		records = append(records, model.EvidenceRecord{
			Title:   result.Title,
			Snippet: result.Snippet,
			URL:     result.URL,
		})
	}
	return records, nil
}

// InstantAnswerStrategy queries the DuckDuckGo Instant Answer API. When it
// yields fewer than two results, the supplement strategy is appended.
type InstantAnswerStrategy struct {
	client     *http.Client
	limiter    *worker.Limiter
	endpoint   string
	userAgent  string
	supplement WebStrategy
}

// NewInstantAnswerStrategy creates the Instant Answer strategy
func NewInstantAnswerStrategy(client *http.Client, endpoint, userAgent string, limiter *worker.Limiter, supplement WebStrategy) *InstantAnswerStrategy {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = "https://api.duckduckgo.com/"
	}
	return &InstantAnswerStrategy{
		client:     client,
		limiter:    limiter,
		endpoint:   endpoint,
		userAgent:  userAgent,
		supplement: supplement,
	}
}

// Name returns the strategy name
func (s *InstantAnswerStrategy) Name() string {
	return "instant_answer"
}

type instantAnswerResponse struct {
	Heading       string          `json:"Heading"`
	Abstract      string          `json:"Abstract"`
	AbstractText  string          `json:"AbstractText"`
	AbstractURL   string          `json:"AbstractURL"`
	Answer        json.RawMessage `json:"Answer"` // String, or an object for calculator-style answers
	RelatedTopics []struct {
		FirstURL string `json:"FirstURL"`
		Text     string `json:"Text"`
	} `json:"RelatedTopics"`
}

// Search queries the API and converts the abstract, direct answer and up
// to two related topics into records
func (s *InstantAnswerStrategy) Search(ctx context.Context, query string) ([]model.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	var data instantAnswerResponse
	if err := fetchJSON(s.client, s.limiter, req, &data); err != nil {
		return nil, err
	}

	var records []model.EvidenceRecord

	if data.Abstract != "" || data.AbstractText != "" {
		title := data.Heading
		if title == "" {
			title = "DuckDuckGo Instant Answer"
		}
		snippet := data.AbstractText
		if snippet == "" {
			snippet = data.Abstract
		}
		records = append(records, model.EvidenceRecord{
			Title:   title,
			Snippet: snippet,
			URL:     data.AbstractURL,
		})
	}

	var answer string
	if len(data.Answer) > 0 && json.Unmarshal(data.Answer, &answer) == nil && answer != "" {
		records = append(records, model.EvidenceRecord{
			Title:   "Direct Answer",
			Snippet: answer,
		})
	}

	related := 0
	for _, topic := range data.RelatedTopics {
		if related == 2 {
			break
		}
		// Topic groups carry no text of their own
		if topic.Text == "" {
			continue
		}
		records = append(records, model.EvidenceRecord{
			Title:   "Related Topic",
			Snippet: topic.Text,
			URL:     topic.FirstURL,
		})
		related++
	}

	if len(records) < 2 && s.supplement != nil {
		extra, err := s.supplement.Search(ctx, query)
		if err != nil {
			slog.Debug("supplementary web search failed", "strategy", s.supplement.Name(), "error", err)
		}
		records = append(records, extra...)
	}

	return records, nil
}

// SimulatedStrategy stands in for an alternate web search provider. It
// never fabricates content and always returns no results.
type SimulatedStrategy struct{}

// Name returns the strategy name
func (SimulatedStrategy) Name() string {
	return "simulated"
}

// Search returns an empty result set
func (SimulatedStrategy) Search(context.Context, string) ([]model.EvidenceRecord, error) {
	return empty(), nil
}
