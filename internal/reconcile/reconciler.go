// Package reconcile corrects a model's categorical verdict when its own
// explanation says otherwise.
package reconcile

import (
	"log/slog"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Reconciler applies the correction table to model verdicts.
// It is pure apart from debug logging and safe for concurrent use.
type Reconciler struct {
	detector Detector
}

// New creates a reconciler around the given detector
func New(detector Detector) *Reconciler {
	if detector == nil {
		detector = English()
	}
	return &Reconciler{detector: detector}
}

// Reconcile returns the category consistent with the explanation:
//
//	verified   -> misleading if the explanation contradicts the claim
//	misleading -> verified   if it confirms and nothing contradicts
//	unverified -> misleading if it contradicts, else verified if it confirms
//
// Anything else is returned unchanged.
func (r *Reconciler) Reconcile(claimText string, category model.Category, explanation string) model.Category {
	out := r.decide(category, explanation)
	if out != category {
		slog.Debug("verdict corrected by explanation",
			"claim", claimText,
			"from", category,
			"to", out,
		)
	}
	return out
}

func (r *Reconciler) decide(category model.Category, explanation string) model.Category {
	contradiction := r.detector.DetectsContradiction(explanation)

	switch category {
	case model.CategoryVerified:
		if contradiction {
			return model.CategoryMisleading
		}

	case model.CategoryMisleading:
		if !contradiction && r.detector.DetectsConfirmation(explanation) {
			return model.CategoryVerified
		}

	case model.CategoryUnverified:
		if contradiction {
			return model.CategoryMisleading
		}
		if r.detector.DetectsConfirmation(explanation) {
			return model.CategoryVerified
		}
	}

	return category
}
