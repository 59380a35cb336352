package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ppiankov/claimcheck/internal/evidence"
	"github.com/ppiankov/claimcheck/internal/interpret"
	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/progress"
	"github.com/ppiankov/claimcheck/internal/reconcile"
	"github.com/ppiankov/claimcheck/internal/store"
)

var tracer = otel.Tracer("claimcheck.pipeline")

// sleepFunc waits between claims; tests replace it
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const (
	percentAnalyzing = 70
	percentCompleted = 100
)

// Gatherer collects the evidence bundle for a claim
type Gatherer interface {
	Gather(ctx context.Context, claimText string, sink progress.Sink) model.Bundle
}

// Interpreter turns a claim and its evidence into a raw verdict
type Interpreter interface {
	Interpret(ctx context.Context, claimText string, bundle model.Bundle) (model.Verdict, error)
}

// Options tunes the verifier
type Options struct {
	// ClaimPause is the delay between consecutive claims in VerifyAll
	ClaimPause time.Duration
	// Fallback overrides the heuristic constants used when interpretation fails
	Fallback *interpret.FallbackParams
}

// Verifier runs gather, interpret and reconcile for each claim
type Verifier struct {
	gatherer    Gatherer
	interpreter Interpreter
	reconciler  *reconcile.Reconciler
	classifier  *evidence.AuthorityClassifier
	fallback    interpret.FallbackParams
	claimPause  time.Duration
}

// NewVerifier wires the verification stages. A nil reconciler uses the
// English markers; a nil classifier uses the default authority lists.
func NewVerifier(gatherer Gatherer, interpreter Interpreter, reconciler *reconcile.Reconciler, classifier *evidence.AuthorityClassifier, opts Options) *Verifier {
	if reconciler == nil {
		reconciler = reconcile.New(nil)
	}
	if classifier == nil {
		classifier = evidence.NewAuthorityClassifier(nil)
	}
	fallback := interpret.DefaultFallbackParams()
	if opts.Fallback != nil {
		fallback = *opts.Fallback
	}

	return &Verifier{
		gatherer:    gatherer,
		interpreter: interpreter,
		reconciler:  reconciler,
		classifier:  classifier,
		fallback:    fallback,
		claimPause:  opts.ClaimPause,
	}
}

// VerifyOne verifies a single claim. It always returns a result: failures
// become a result with status error.
func (v *Verifier) VerifyOne(ctx context.Context, claimText string, sink progress.Sink) (result model.VerificationResult) {
	sink = progress.OrDiscard(sink)
	start := time.Now()

	ctx, span := tracer.Start(ctx, "pipeline.VerifyOne",
		trace.WithAttributes(attribute.Int("claim.chars", len(claimText))),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("claim verification panicked", "claim", claimText, "panic", r)
			result = errorResult(fmt.Errorf("%v", r))
		}

		if result.Status == model.StatusError {
			span.SetStatus(codes.Error, result.Explanation)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(
			attribute.String("verification.status", string(result.Status)),
			attribute.Int("verification.confidence", result.Confidence),
			attribute.Bool("verification.fallback", result.Fallback),
		)
		metrics.Verifications.WithLabelValues(string(result.Status)).Inc()
		metrics.VerificationDuration.Observe(time.Since(start).Seconds())
	}()

	return v.verify(ctx, claimText, sink)
}

func (v *Verifier) verify(ctx context.Context, claimText string, sink progress.Sink) model.VerificationResult {
	bundle := v.gatherer.Gather(ctx, claimText, sink)
	if err := ctx.Err(); err != nil {
		return errorResult(err)
	}

	if bundle.IsEmpty() {
		sink.Emit(progress.Event{Stage: progress.StageCompleted, Percent: percentCompleted, Message: "no sources found"})
		return model.VerificationResult{
			Status:      model.StatusUnverified,
			Explanation: "Not enough information found to verify this fact.",
			Confidence:  0,
			Sources:     []model.Source{},
		}
	}

	sources := v.classifier.Sources(bundle)
	sink.Emit(progress.Event{
		Stage:   progress.StageAnalyzing,
		Percent: percentAnalyzing,
		Found:   bundle.Len(),
		Message: fmt.Sprintf("analyzing %d sources", bundle.Len()),
	})

	var result model.VerificationResult
	verdict, err := v.interpreter.Interpret(ctx, claimText, bundle)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errorResult(ctxErr)
		}
		slog.Warn("interpretation failed, using source heuristic", "claim", claimText, "error", err)
		metrics.InterpretationFallbacks.Inc()

		result = v.fallback.Interpret(bundle)
		result.Sources = sources
	} else {
		category := v.reconciler.Reconcile(claimText, verdict.Category, verdict.Explanation)
		if category != verdict.Category {
			metrics.StatusCorrections.WithLabelValues(string(verdict.Category), string(category)).Inc()
		}

		result = model.VerificationResult{
			Status:      category.Status(),
			Explanation: verdict.Explanation,
			Confidence:  model.ClampConfidence(verdict.Confidence),
			Sources:     sources,
			Corrected:   category != verdict.Category,
		}
	}

	sink.Emit(progress.Event{
		Stage:   progress.StageCompleted,
		Percent: percentCompleted,
		Found:   len(sources),
		Message: string(result.Status),
	})
	return result
}

func errorResult(err error) model.VerificationResult {
	return model.VerificationResult{
		Status:      model.StatusError,
		Explanation: fmt.Sprintf("An error occurred while verifying the fact: %v", err),
		Confidence:  0,
		Sources:     []model.Source{},
	}
}

// VerifyAll verifies every published claim in publication order, one at a
// time with a pause between claims, completing each in the store by id.
// It stops early only when ctx is done and returns the number of claims
// completed.
func (v *Verifier) VerifyAll(ctx context.Context, s *store.Store, sink progress.Sink) (int, error) {
	sink = progress.OrDiscard(sink)
	claims := s.Published()
	total := len(claims)

	completed := 0
	for i, claim := range claims {
		if i > 0 {
			if err := sleepFunc(ctx, v.claimPause); err != nil {
				return completed, err
			}
		}
		if err := ctx.Err(); err != nil {
			return completed, err
		}

		sink.Emit(progress.Event{Stage: progress.StageClaimStart, Index: i + 1, Total: total, ClaimID: claim.ID, Message: claim.Text})

		claimSink := progress.SinkFunc(func(e progress.Event) {
			e.ClaimID = claim.ID
			sink.Emit(e)
		})
		result := v.VerifyOne(ctx, claim.Text, claimSink)

		if err := s.Complete(claim.ID, result); err != nil {
			return completed, fmt.Errorf("complete claim %s: %w", claim.ID, err)
		}
		completed++

		sink.Emit(progress.Event{Stage: progress.StageClaimDone, Index: i + 1, Total: total, ClaimID: claim.ID, Message: string(result.Status)})
	}

	return completed, nil
}
