package util

import (
	"net/url"
	"testing"

	"golang.org/x/net/html"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Paris is  the capital", "Paris is the capital"},
		{"search match", `<span class="searchmatch">Paris</span> is the capital of France`, "Paris is the capital of France"},
		{"entities", "Fish &amp; chips", "Fish & chips"},
		{"script dropped", "<script>alert(1)</script>text", "text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindAllAndClass(t *testing.T) {
	doc, err := ParseHTML(`<div><a class="result__a big" href="/a">A</a><a class="other" href="/b">B</a><a class="result__a" href="/c">C</a></div>`)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}

	links := FindAll(doc, ElementWithClass("a", "result__a"))
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if Attr(links[0], "href") != "/a" || Attr(links[1], "href") != "/c" {
		t.Errorf("unexpected hrefs: %q, %q", Attr(links[0], "href"), Attr(links[1], "href"))
	}

	first := FindFirst(doc, func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "a" })
	if first == nil || NodeText(first) != "A" {
		t.Errorf("FindFirst returned wrong node")
	}
}

func TestResolveURL(t *testing.T) {
	base, _ := url.Parse("https://html.duckduckgo.com/html/")

	tests := []struct {
		href string
		want string
	}{
		{"https://example.com/page", "https://example.com/page"},
		{"/l/?uddg=x", "https://html.duckduckgo.com/l/?uddg=x"},
		{"#top", ""},
		{"javascript:void(0)", ""},
		{"mailto:a@b.c", ""},
		{"ftp://example.com", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ResolveURL(base, tt.href); got != tt.want {
			t.Errorf("ResolveURL(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
