package evidence

import (
	"net/url"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// AuthorityClassifier classifies source hosts into authority tiers
type AuthorityClassifier struct {
	primary   []string
	secondary []string
	suffixes  []string
}

// NewAuthorityClassifier creates a classifier from the configured domain
// lists. A nil config uses the defaults.
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	return &AuthorityClassifier{
		primary:   normalizeDomains(config.PrimaryDomains),
		secondary: normalizeDomains(config.SecondaryDomains),
		suffixes:  normalizeDomains(config.PrimarySuffixes),
	}
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Classify classifies a URL into an authority tier. URLs without a host
// (such as direct answers) are TierUnknown.
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	host := hostOf(rawURL)
	if host == "" {
		return model.TierUnknown
	}

	if matchesDomain(host, a.primary) {
		return model.TierPrimary
	}
	if matchesDomain(host, a.secondary) {
		return model.TierSecondary
	}

	// Suffix heuristics such as .gov and .edu
	for _, suffix := range a.suffixes {
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		if strings.HasSuffix(host, suffix) {
			return model.TierPrimary
		}
	}

	// UK academic institutions
	if strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// Sources converts bundle records into display sources with host and
// authority tier, preserving bundle order
func (a *AuthorityClassifier) Sources(bundle model.Bundle) []model.Source {
	sources := make([]model.Source, 0, bundle.Len())
	for _, r := range bundle.Records {
		sources = append(sources, model.Source{
			Title:     r.Title,
			URL:       r.URL,
			Kind:      r.Kind,
			Host:      hostOf(r.URL),
			Authority: a.Classify(r.URL),
		})
	}
	return sources
}

// matchesDomain reports whether host equals a domain or is a subdomain of it
func matchesDomain(host string, domains []string) bool {
	for _, domain := range domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// hostOf returns the lower-cased host of a URL without port
func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
