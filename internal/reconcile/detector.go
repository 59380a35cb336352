package reconcile

import (
	"regexp"
	"strings"
)

// Detector reads a verdict explanation for signs of contradiction or
// confirmation
type Detector interface {
	DetectsContradiction(text string) bool
	DetectsConfirmation(text string) bool
}

// KeywordDetector matches lower-cased marker phrases and regex patterns.
// Contradiction markers and negations are masked out of the text before
// confirmation markers are matched, so "not confirmed" never counts as
// "confirmed".
type KeywordDetector struct {
	Language string

	// Contradictions signal that the sources disagree with the claim
	Contradictions []string
	// Confirmations signal that the sources agree with the claim
	Confirmations []string
	// Negations are masked like contradictions but signal nothing by themselves
	Negations []string
	// Patterns are contradiction shapes too loose for a fixed phrase
	Patterns []*regexp.Regexp
	// NegationPatterns are masked before confirmation matching, applied to
	// lower-cased text
	NegationPatterns []*regexp.Regexp
}

// DetectsContradiction reports whether any contradiction marker or pattern
// matches
func (d *KeywordDetector) DetectsContradiction(text string) bool {
	return d.hasContradictionMarker(text) || d.hasContradictionPattern(text)
}

// DetectsConfirmation reports whether a confirmation marker matches and no
// contradiction marker does
func (d *KeywordDetector) DetectsConfirmation(text string) bool {
	if d.hasContradictionMarker(text) {
		return false
	}
	masked := d.mask(strings.ToLower(text))
	for _, marker := range d.Confirmations {
		if strings.Contains(masked, marker) {
			return true
		}
	}
	return false
}

func (d *KeywordDetector) hasContradictionMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range d.Contradictions {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (d *KeywordDetector) hasContradictionPattern(text string) bool {
	for _, p := range d.Patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// mask blanks out every contradiction and negation phrase
func (d *KeywordDetector) mask(lower string) string {
	for _, list := range [][]string{d.Contradictions, d.Negations} {
		for _, marker := range list {
			if strings.Contains(lower, marker) {
				lower = strings.ReplaceAll(lower, marker, " ")
			}
		}
	}
	for _, p := range d.NegationPatterns {
		lower = p.ReplaceAllString(lower, " ")
	}
	return lower
}

// MultiDetector ORs several detectors. Confirmation requires that no member
// sees a contradiction.
type MultiDetector []Detector

func (m MultiDetector) DetectsContradiction(text string) bool {
	for _, d := range m {
		if d.DetectsContradiction(text) {
			return true
		}
	}
	return false
}

func (m MultiDetector) DetectsConfirmation(text string) bool {
	confirmed := false
	for _, d := range m {
		if d.DetectsContradiction(text) {
			return false
		}
		if d.DetectsConfirmation(text) {
			confirmed = true
		}
	}
	return confirmed
}
