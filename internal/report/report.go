// Package report aggregates verified claims into a report and renders it.
package report

import (
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Build aggregates claims into a report. Claims are copied; sources are
// deduplicated by URL across claims in first-seen order.
func Build(inputText string, claims []*model.Claim, llmInfo *model.LLMInfo, now time.Time) *model.Report {
	report := &model.Report{
		GeneratedAt: now.UTC(),
		InputText:   inputText,
		Claims:      make([]*model.Claim, 0, len(claims)),
		Sources:     []model.Source{},
		Principles:  model.DefaultPrinciples(),
		LLM:         llmInfo,
	}

	seen := make(map[string]bool)
	for _, claim := range claims {
		report.Claims = append(report.Claims, claim.Clone())
		if claim.Verification == nil {
			continue
		}
		for _, source := range claim.Verification.Sources {
			if source.URL == "" || seen[source.URL] {
				continue
			}
			seen[source.URL] = true
			report.Sources = append(report.Sources, source)
		}
	}

	report.Summary = Summarize(claims)
	return report
}

// Summarize counts claims by status
func Summarize(claims []*model.Claim) model.Summary {
	var s model.Summary
	s.Total = len(claims)
	for _, claim := range claims {
		switch claim.Status {
		case model.StatusVerified:
			s.Verified++
		case model.StatusUnverified:
			s.Unverified++
		case model.StatusMisleading:
			s.Misleading++
		case model.StatusError:
			s.Errors++
		}
		if v := claim.Verification; v != nil {
			if v.Corrected {
				s.Corrected++
			}
			if v.Fallback {
				s.Fallbacks++
			}
		}
	}
	return s
}

// Pending returns the number of claims not yet verified
func Pending(s model.Summary) int {
	return s.Total - s.Verified - s.Unverified - s.Misleading - s.Errors
}
