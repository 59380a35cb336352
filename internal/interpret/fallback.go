package interpret

import (
	"fmt"

	"github.com/ppiankov/claimcheck/internal/model"
)

// FallbackParams are the confidence constants of the source-count
// heuristic
type FallbackParams struct {
	// Bundles with an encyclopedia record: min(EncyclopediaBase + EncyclopediaStep*n, EncyclopediaCap)
	EncyclopediaBase int
	EncyclopediaStep int
	EncyclopediaCap  int

	// Web-only bundles: min(WebBase + WebStep*n, WebCap)
	WebBase int
	WebStep int
	WebCap  int
}

// DefaultFallbackParams returns the standard heuristic constants
func DefaultFallbackParams() FallbackParams {
	return FallbackParams{
		EncyclopediaBase: 60,
		EncyclopediaStep: 10,
		EncyclopediaCap:  85,
		WebBase:          30,
		WebStep:          5,
		WebCap:           50,
	}
}

// Fallback interprets a bundle with the default constants
func Fallback(bundle model.Bundle) model.VerificationResult {
	return DefaultFallbackParams().Interpret(bundle)
}

// Interpret judges a bundle by its size and composition alone. The result
// carries no sources; the caller attaches them.
func (p FallbackParams) Interpret(bundle model.Bundle) model.VerificationResult {
	n := bundle.Len()
	if n == 0 {
		return model.VerificationResult{
			Status:      model.StatusUnverified,
			Explanation: "No sources found to verify this statement.",
			Confidence:  0,
			Fallback:    true,
		}
	}

	if encyclopedia := bundle.CountKind(model.SourceEncyclopedia); encyclopedia > 0 {
		return model.VerificationResult{
			Status: model.StatusVerified,
			Explanation: fmt.Sprintf("Found %d sources, including %d from Wikipedia. "+
				"Additional verification is required for a final conclusion.", n, encyclopedia),
			Confidence: model.ClampConfidence(min(p.EncyclopediaBase+p.EncyclopediaStep*n, p.EncyclopediaCap)),
			Fallback:   true,
		}
	}

	return model.VerificationResult{
		Status: model.StatusUnverified,
		Explanation: fmt.Sprintf("Found %d sources, but more detailed analysis is required "+
			"for a final conclusion.", n),
		Confidence: model.ClampConfidence(min(p.WebBase+p.WebStep*n, p.WebCap)),
		Fallback:   true,
	}
}
