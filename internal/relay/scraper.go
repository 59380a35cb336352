package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/util"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// ErrDisallowed is returned when robots.txt forbids fetching a results page
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Scraper searches DuckDuckGo's HTML endpoint, then its lite endpoint
type Scraper struct {
	fetcher *Fetcher
	robots  *util.RobotsChecker
	limiter *worker.Limiter
	baseURL string
}

// NewScraper creates a scraper against baseURL (https://duckduckgo.com in
// production). A nil robots checker skips robots.txt; a nil limiter does
// not pace requests.
func NewScraper(fetcher *Fetcher, baseURL string, robots *util.RobotsChecker, limiter *worker.Limiter) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		robots:  robots,
		limiter: limiter,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the backend name
func (s *Scraper) Name() string {
	return "duckduckgo"
}

type endpoint struct {
	path  string
	parse func(doc *html.Node) []model.RelayResult
}

// Search tries each endpoint in turn and returns the first non-empty result
// list. When every endpoint fails the last error is returned.
func (s *Scraper) Search(ctx context.Context, query string, limit int) ([]model.RelayResult, error) {
	endpoints := []endpoint{
		{path: "/html/", parse: parseHTMLResults},
		{path: "/lite/", parse: parseLiteResults},
	}

	var lastErr error
	for _, ep := range endpoints {
		pageURL := s.baseURL + ep.path + "?q=" + url.QueryEscape(query)

		results, err := s.searchPage(ctx, pageURL, ep.parse)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Debug("scraper endpoint failed", "url", pageURL, "error", err)
			lastErr = err
			continue
		}
		if len(results) > 0 {
			return normalize(results, limit), nil
		}
		slog.Debug("scraper endpoint returned no results", "url", pageURL)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return []model.RelayResult{}, nil
}

func (s *Scraper) searchPage(ctx context.Context, pageURL string, parse func(*html.Node) []model.RelayResult) ([]model.RelayResult, error) {
	crawlDelay := s.delayFor(ctx, pageURL)
	if crawlDelay < 0 {
		return nil, fmt.Errorf("%s: %w", pageURL, ErrDisallowed)
	}
	if err := s.limiter.WaitWithDelay(ctx, pageURL, crawlDelay); err != nil {
		return nil, err
	}

	page, err := s.fetcher.FetchWithRetry(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := util.ParseHTML(page.HTML)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}
	return parse(doc), nil
}

// delayFor returns the robots.txt crawl delay for pageURL, or a negative
// duration when the page may not be fetched
func (s *Scraper) delayFor(ctx context.Context, pageURL string) time.Duration {
	if s.robots == nil {
		return 0
	}
	allowed, delay, err := s.robots.CanFetch(ctx, pageURL)
	if err != nil || !allowed {
		return -1
	}
	return delay
}

// parseHTMLResults extracts results from the full HTML endpoint. Several
// container layouts are tried in order; the first that matches wins.
func parseHTMLResults(doc *html.Node) []model.RelayResult {
	containers := []func(*html.Node) bool{
		util.ElementWithClass("div", "result"),
		util.ElementWithClass("div", "results_links"),
		util.ElementWithClass("div", "web-result"),
		util.ElementWithClass("article", "result"),
	}

	var nodes []*html.Node
	for _, match := range containers {
		if nodes = util.FindAll(doc, match); len(nodes) > 0 {
			break
		}
	}

	var results []model.RelayResult
	for _, node := range nodes {
		titleNode := findAny(node,
			util.ElementWithClass("a", "result__a"),
			util.ElementWithClass("a", "result__url"),
			headingLink,
		)
		if titleNode == nil {
			continue
		}

		link := resultLink(util.Attr(titleNode, "href"))
		title := util.NodeText(titleNode)
		if link == "" || title == "" {
			continue
		}

		snippet := ""
		if snippetNode := findAny(node,
			util.ElementWithClass("a", "result__snippet"),
			util.ElementWithClass("div", "result__snippet"),
			util.ElementWithClass("", "snippet"),
		); snippetNode != nil {
			snippet = util.NodeText(snippetNode)
		}

		results = append(results, model.RelayResult{Title: title, Snippet: snippet, URL: link})
	}
	return results
}

// parseLiteResults extracts results from the lite endpoint's table: a row
// with the result link followed by a row whose first link-free cell is the
// snippet
func parseLiteResults(doc *html.Node) []model.RelayResult {
	var results []model.RelayResult
	for _, row := range util.FindAll(doc, isElement("tr")) {
		link := util.FindFirst(row, isElement("a"))
		if link == nil {
			continue
		}

		href := strings.TrimSpace(util.Attr(link, "href"))
		// Site-relative links are navigation, not results
		if href == "" || (strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")) {
			continue
		}
		target := resultLink(href)
		title := util.NodeText(link)
		if target == "" || title == "" {
			continue
		}

		snippet := ""
		if next := nextElementSibling(row, "tr"); next != nil {
			for _, cell := range util.FindAll(next, isElement("td")) {
				if util.FindFirst(cell, isElement("a")) != nil {
					continue
				}
				if text := util.NodeText(cell); text != "" {
					snippet = text
					break
				}
			}
		}

		results = append(results, model.RelayResult{Title: title, Snippet: snippet, URL: target})
	}
	return results
}

// resultLink unwraps DuckDuckGo redirect links (/l/?uddg=...) to the
// target URL. Anchors and javascript: links yield "".
func resultLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	if strings.Contains(href, "uddg=") || strings.Contains(href, "/l.js?") || strings.Contains(href, "/y.js?") {
		parsed, err := url.Parse(href)
		if err != nil {
			return ""
		}
		query := parsed.Query()
		if target := query.Get("uddg"); target != "" {
			return util.ResolveURL(nil, target)
		}
		if target := query.Get("u"); target != "" {
			return util.ResolveURL(nil, target)
		}
		return ""
	}
	return util.ResolveURL(nil, href)
}

func findAny(n *html.Node, predicates ...func(*html.Node) bool) *html.Node {
	for _, p := range predicates {
		if found := util.FindFirst(n, p); found != nil {
			return found
		}
	}
	return nil
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// headingLink matches a link inside an h2 or a .result__title element
func headingLink(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "a" {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (p.Data == "h2" || util.HasClass(p, "result__title")) {
			return true
		}
	}
	return false
}

func nextElementSibling(n *html.Node, tag string) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			if s.Data == tag {
				return s
			}
			return nil
		}
	}
	return nil
}
