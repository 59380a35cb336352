package relay

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/claimcheck/internal/util"
)

const htmlPage = `<html><body>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FEiffel_Tower&amp;rut=abc">Eiffel <b>Tower</b></a></h2>
  <a class="result__snippet" href="#">The tower is <b>330 metres</b> tall.</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="https://example.com/paris">Paris</a></h2>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="javascript:void(0)">Ad</a></h2>
</div>
</body></html>`

const litePage = `<html><body><table>
<tr><td><a href="/lite/?q=next">Next Page</a></td></tr>
<tr><td>1.</td><td><a class="result-link" href="https://example.com/eiffel">Eiffel Tower</a></td></tr>
<tr><td>&nbsp;</td><td class="result-snippet">Tallest structure in Paris.</td></tr>
</table></body></html>`

func newScraperServer(t *testing.T, robots, htmlBody, liteBody string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var pages atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if robots == "" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, robots)
	})
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		if r.URL.Query().Get("q") != "eiffel tower" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = fmt.Fprint(w, htmlBody)
	})
	mux.HandleFunc("/lite/", func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		_, _ = fmt.Fprint(w, liteBody)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &pages
}

func TestScraper_HTMLEndpoint(t *testing.T) {
	server, _ := newScraperServer(t, "", htmlPage, "")
	scraper := NewScraper(NewFetcher(server.Client(), "claimcheck-test", 0), server.URL, nil, nil)

	results, err := scraper.Search(context.Background(), "eiffel tower", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Eiffel Tower", results[0].Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Eiffel_Tower", results[0].URL)
	assert.Equal(t, "The tower is 330 metres tall.", results[0].Snippet)
	assert.Equal(t, "https://example.com/paris", results[1].URL)
	assert.Equal(t, "No Description", results[1].Snippet)
}

func TestScraper_FallsBackToLite(t *testing.T) {
	server, pages := newScraperServer(t, "", "<html><body>no results</body></html>", litePage)
	scraper := NewScraper(NewFetcher(server.Client(), "claimcheck-test", 0), server.URL, nil, nil)

	results, err := scraper.Search(context.Background(), "eiffel tower", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Eiffel Tower", results[0].Title)
	assert.Equal(t, "Tallest structure in Paris.", results[0].Snippet)
	assert.Equal(t, int32(2), pages.Load())
}

func TestScraper_RespectsRobots(t *testing.T) {
	server, pages := newScraperServer(t, "User-agent: *\nDisallow: /html/\nDisallow: /lite/\n", htmlPage, litePage)
	robots := util.NewRobotsChecker(server.Client(), "claimcheck-test")
	scraper := NewScraper(NewFetcher(server.Client(), "claimcheck-test", 0), server.URL, robots, nil)

	_, err := scraper.Search(context.Background(), "eiffel tower", 5)
	assert.ErrorIs(t, err, ErrDisallowed)
	assert.Equal(t, int32(0), pages.Load())
}

func TestScraper_NoResults(t *testing.T) {
	server, _ := newScraperServer(t, "", "<html></html>", "<html></html>")
	scraper := NewScraper(NewFetcher(server.Client(), "claimcheck-test", 0), server.URL, nil, nil)

	results, err := scraper.Search(context.Background(), "eiffel tower", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResultLink(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"https://example.com/a", "https://example.com/a"},
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fb", "https://example.com/b"},
		{"https://duckduckgo.com/l.js?u=https%3A%2F%2Fexample.com%2Fc", "https://example.com/c"},
		{"https://duckduckgo.com/y.js?ad=1", ""},
		{"#", ""},
		{"javascript:void(0)", ""},
		{"mailto:press@example.com", ""},
		{"/relative/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resultLink(tt.href); got != tt.want {
			t.Errorf("resultLink(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
