package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/util"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// stopWords are dropped from claims before they are sent to the search API
var stopWords = map[string]bool{
	"the": true, "is": true, "are": true, "was": true, "were": true, "has": true,
	"have": true, "had": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "can": true, "must": true,
	"shall": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "by": true, "for": true, "with": true,
	"to": true, "of": true,

	"это": true, "есть": true, "был": true, "была": true, "было": true,
	"были": true, "имеет": true, "имел": true, "будет": true, "мог": true,
	"может": true, "должен": true, "и": true, "или": true, "но": true,
	"в": true, "на": true, "с": true, "для": true, "от": true,
}

// ExtractKeywords reduces a claim to at most limit search keywords: lower
// case, punctuation removed, tokens of one or two characters and stop
// words dropped, original order kept
func ExtractKeywords(text string, limit int) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) <= 2 || stopWords[word] {
			continue
		}
		keywords = append(keywords, word)
		if limit > 0 && len(keywords) == limit {
			break
		}
	}
	return keywords
}

// WikipediaAdapter searches Wikipedia through the REST search endpoint
type WikipediaAdapter struct {
	client      *http.Client
	limiter     *worker.Limiter
	baseURL     string
	userAgent   string
	limit       int
	maxKeywords int
}

// NewWikipediaAdapter creates an encyclopedia searcher. The base URL
// defaults to https://<lang>.wikipedia.org.
func NewWikipediaAdapter(cfg model.WikipediaConfig, client *http.Client, userAgent string, limiter *worker.Limiter) *WikipediaAdapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		lang := cfg.Lang
		if lang == "" {
			lang = "en"
		}
		baseURL = fmt.Sprintf("https://%s.wikipedia.org", lang)
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 3
	}
	maxKeywords := cfg.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = 5
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &WikipediaAdapter{
		client:      client,
		limiter:     limiter,
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		limit:       limit,
		maxKeywords: maxKeywords,
	}
}

// Name returns the adapter name
func (w *WikipediaAdapter) Name() string {
	return "wikipedia"
}

type wikipediaSearchResponse struct {
	Pages []struct {
		ID          int    `json:"id"`
		Key         string `json:"key"`
		Title       string `json:"title"`
		Excerpt     string `json:"excerpt"`
		Description string `json:"description"`
	} `json:"pages"`
}

// Search looks up the claim's keywords and returns up to limit articles
func (w *WikipediaAdapter) Search(ctx context.Context, query string) []model.EvidenceRecord {
	keywords := ExtractKeywords(query, w.maxKeywords)
	if len(keywords) == 0 {
		slog.Debug("no search keywords in claim", "source", w.Name(), "claim", query)
		observe(w.Name(), w.Name(), 0, nil)
		return empty()
	}

	records, err := w.search(ctx, strings.Join(keywords, " "))
	observe(w.Name(), w.Name(), len(records), err)
	if err != nil {
		slog.Warn("wikipedia search failed", "error", err)
		return empty()
	}
	return tag(records, model.SourceEncyclopedia, w.limit)
}

func (w *WikipediaAdapter) search(ctx context.Context, q string) ([]model.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(w.limit))
	searchURL := w.baseURL + "/w/rest.php/v1/search/page?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", w.userAgent)

	var data wikipediaSearchResponse
	if err := fetchJSON(w.client, w.limiter, req, &data); err != nil {
		return nil, err
	}

	records := make([]model.EvidenceRecord, 0, len(data.Pages))
	for _, page := range data.Pages {
		if page.Title == "" {
			continue
		}
		snippet := util.StripTags(page.Excerpt)
		if snippet == "" {
			snippet = page.Description
		}
		records = append(records, model.EvidenceRecord{
			Title:   page.Title,
			Snippet: snippet,
			URL:     w.articleURL(page.Title),
		})
	}
	return records, nil
}

// articleURL builds the canonical article link for a page title
func (w *WikipediaAdapter) articleURL(title string) string {
	return w.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
