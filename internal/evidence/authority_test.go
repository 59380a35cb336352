package evidence

import (
	"testing"

	"github.com/ppiankov/claimcheck/internal/model"
)

func TestAuthorityClassifier_Classify(t *testing.T) {
	config := &model.AuthorityConfig{
		PrimaryDomains:   []string{"legislation.gov.uk", "doi.org"},
		SecondaryDomains: []string{"wikipedia.org", "Britannica.com "},
		PrimarySuffixes:  []string{".gov", "edu"},
	}

	classifier := NewAuthorityClassifier(config)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{"https://legislation.gov.uk/ukpga/1998/42", model.TierPrimary, "primary domain exact match"},
		{"https://www.legislation.gov.uk/statute", model.TierPrimary, "primary domain with subdomain"},
		{"https://doi.org/10.1234/example", model.TierPrimary, "DOI primary source"},
		{"https://en.wikipedia.org/wiki/Eiffel_Tower", model.TierSecondary, "wikipedia secondary source"},
		{"https://www.britannica.com/topic/x", model.TierSecondary, "domains normalized"},
		{"https://www.nasa.gov/mission", model.TierPrimary, ".gov suffix"},
		{"https://cs.stanford.edu/page", model.TierPrimary, "suffix without leading dot"},
		{"https://www.ox.ac.uk/research", model.TierPrimary, "UK academic"},
		{"https://someblog.example.com/post", model.TierTertiary, "tertiary default"},
		{"https://EN.Wikipedia.org:443/wiki/X", model.TierSecondary, "case and port ignored"},
		{"https://notwikipedia.org/x", model.TierTertiary, "no partial label match"},
		{"", model.TierUnknown, "direct answer without URL"},
		{"://bad", model.TierUnknown, "unparseable URL"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_Sources(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)
	bundle := model.NewBundle("q",
		[]model.EvidenceRecord{{Title: "Paris", URL: "https://en.wikipedia.org/wiki/Paris", Kind: model.SourceEncyclopedia}},
		[]model.EvidenceRecord{{Title: "Direct Answer", Snippet: "42", Kind: model.SourceWeb}},
	)

	sources := classifier.Sources(bundle)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Host != "en.wikipedia.org" || sources[0].Authority != model.TierSecondary || sources[0].Kind != model.SourceEncyclopedia {
		t.Errorf("unexpected first source: %+v", sources[0])
	}
	if sources[1].Host != "" || sources[1].Authority != model.TierUnknown {
		t.Errorf("unexpected second source: %+v", sources[1])
	}
}

func TestNewAuthorityClassifier_NilConfig(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)
	if classifier.Classify("https://www.who.int/news") != model.TierPrimary {
		t.Error("expected default primary domains")
	}
}
