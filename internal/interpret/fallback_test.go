package interpret

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/claimcheck/internal/model"
)

func recordsOf(kind model.SourceKind, n int) []model.EvidenceRecord {
	out := make([]model.EvidenceRecord, n)
	for i := range out {
		out[i] = model.EvidenceRecord{Title: fmt.Sprintf("r%d", i), Kind: kind}
	}
	return out
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name        string
		ency, web   int
		status      model.Status
		confidence  int
		explanation string
	}{
		{"empty", 0, 0, model.StatusUnverified, 0, "No sources found to verify this statement."},
		{"one encyclopedia", 1, 0, model.StatusVerified, 70, "Found 1 sources, including 1 from Wikipedia. Additional verification is required for a final conclusion."},
		{"encyclopedia capped", 3, 3, model.StatusVerified, 85, "Found 6 sources, including 3 from Wikipedia. Additional verification is required for a final conclusion."},
		{"web only", 0, 2, model.StatusUnverified, 40, "Found 2 sources, but more detailed analysis is required for a final conclusion."},
		{"web only capped", 0, 5, model.StatusUnverified, 50, "Found 5 sources, but more detailed analysis is required for a final conclusion."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := model.NewBundle("q", recordsOf(model.SourceEncyclopedia, tt.ency), recordsOf(model.SourceWeb, tt.web))
			result := Fallback(bundle)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.confidence, result.Confidence)
			assert.Equal(t, tt.explanation, result.Explanation)
			assert.True(t, result.Fallback)
			assert.Empty(t, result.Sources)
		})
	}
}

func TestFallbackParams_Tunable(t *testing.T) {
	params := DefaultFallbackParams()
	params.EncyclopediaBase = 50
	params.EncyclopediaCap = 100

	bundle := model.NewBundle("q", recordsOf(model.SourceEncyclopedia, 2), nil)
	assert.Equal(t, 70, params.Interpret(bundle).Confidence)
}
