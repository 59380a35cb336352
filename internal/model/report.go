package model

import "time"

// Report is the aggregated result of one pipeline run.
// Its schema is the input of external report renderers.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	InputText   string    `json:"input_text"`
	Claims      []*Claim  `json:"claims"`
	Summary     Summary   `json:"summary"`
	Sources     []Source  `json:"sources"` // Unique sources across all claims, by URL

	Principles Principles `json:"principles"`
	LLM        *LLMInfo   `json:"llm,omitempty"`
}

// Summary counts claims by verification status
type Summary struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
	Misleading int `json:"misleading"`
	Errors     int `json:"errors"`
	Corrected  int `json:"corrected"` // Verdicts changed by reconciliation
	Fallbacks  int `json:"fallbacks"` // Verdicts produced without the model
}

// Principles documents the limits of the report
type Principles struct {
	Advisory    bool `json:"advisory"`     // Best-effort, not an authority on truth
	SourceBound bool `json:"source_bound"` // Verdicts only reflect consulted sources
	Reconciled  bool `json:"reconciled"`   // Verdicts checked against their explanation
}

// DefaultPrinciples returns the standard report principles
func DefaultPrinciples() Principles {
	return Principles{
		Advisory:    true,
		SourceBound: true,
		Reconciled:  true,
	}
}

// LLMInfo records which model produced extraction and verdicts
type LLMInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}
