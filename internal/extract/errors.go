package extract

import (
	"errors"
	"fmt"
)

// ErrNoClaims is returned by callers that require at least one claim
var ErrNoClaims = errors.New("failed to extract verifiable facts from the text")

// NoClaimsHint suggests how to rework text that produced no claims.
// Multi-paragraph text gets the "simplify" advice.
func NoClaimsHint(text string) string {
	if len(splitParagraphs(text)) > 1 {
		return "The text may be too complex or contain mainly opinions rather than factual statements. " +
			"Try simplifying the text or breaking it into smaller sections with clear factual claims."
	}
	return "Please ensure your text contains factual statements that can be verified, " +
		"rather than opinions or subjective content."
}

// NoClaimsError wraps ErrNoClaims with the hint for text
func NoClaimsError(text string) error {
	return fmt.Errorf("%w. %s", ErrNoClaims, NoClaimsHint(text))
}
