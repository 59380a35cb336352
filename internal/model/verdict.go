package model

import "strings"

// Category is the language model's categorical verdict for a claim
type Category string

const (
	CategoryVerified   Category = "verified"
	CategoryUnverified Category = "unverified"
	CategoryMisleading Category = "misleading"
)

// ParseCategory maps a model label ("Verified", "misleading", ...) to a
// Category. The second return value is false for unknown labels.
func ParseCategory(label string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "verified":
		return CategoryVerified, true
	case "unverified":
		return CategoryUnverified, true
	case "misleading":
		return CategoryMisleading, true
	default:
		return "", false
	}
}

// Status maps the category into the claim status enum
func (c Category) Status() Status {
	switch c {
	case CategoryVerified:
		return StatusVerified
	case CategoryUnverified:
		return StatusUnverified
	case CategoryMisleading:
		return StatusMisleading
	default:
		return StatusError
	}
}

// Verdict is the raw model output before reconciliation
type Verdict struct {
	Category    Category `json:"status"`
	Explanation string   `json:"explanation"`
	Confidence  int      `json:"confidence"` // 0-100
}

// ClampConfidence forces a confidence score into [0,100]
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// VerificationResult is the claim-facing verification artifact
type VerificationResult struct {
	Status      Status   `json:"status"`
	Explanation string   `json:"explanation"`
	Confidence  int      `json:"confidence"`
	Sources     []Source `json:"sources"`

	// Corrected is set when reconciliation changed the model's category
	Corrected bool `json:"corrected,omitempty"`
	// Fallback is set when the heuristic interpretation replaced the model
	Fallback bool `json:"fallback,omitempty"`
}
