package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/progress"
)

var tracer = otel.Tracer("claimcheck.extract")

// sleepFunc waits between chunks; tests replace it
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

// Strategy is one way of turning text into claim strings. A strategy that
// finds nothing returns an empty slice; an error means it could not run.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, text string, sink progress.Sink) ([]string, error)
}

// Options tunes the extractor
type Options struct {
	// Model overrides the provider's default model
	Model string
	// ChunkDelay is the pause between chunks of the chunked strategy
	ChunkDelay time.Duration
}

// ClaimExtractor extracts atomic factual claims with a language model.
// Strategies run in order until one returns claims.
type ClaimExtractor struct {
	strategies []Strategy
}

// NewClaimExtractor creates the default chain: whole text, then chunks
func NewClaimExtractor(provider llm.Provider, opts Options) *ClaimExtractor {
	c := &completer{provider: provider, model: opts.Model}
	return NewClaimExtractorWithStrategies(
		&WholeTextStrategy{c: c},
		&ChunkedStrategy{c: c, delay: opts.ChunkDelay},
	)
}

// NewClaimExtractorWithStrategies creates an extractor with a custom chain
func NewClaimExtractorWithStrategies(strategies ...Strategy) *ClaimExtractor {
	return &ClaimExtractor{strategies: strategies}
}

// Extract returns the unique claims found in text, in first-seen order.
// Finding no claims is not an error; see NoClaimsError.
func (e *ClaimExtractor) Extract(ctx context.Context, text string, sink progress.Sink) ([]string, error) {
	sink = progress.OrDiscard(sink)

	ctx, span := tracer.Start(ctx, "extract.Extract",
		trace.WithAttributes(attribute.Int("extract.text_chars", len(text))),
	)
	defer span.End()

	sink.Emit(progress.Event{Stage: progress.StageExtractStart, Message: "Starting fact extraction..."})

	var claims []string
	for _, s := range e.strategies {
		found, err := s.Extract(ctx, text, sink)
		if ctxErr := ctx.Err(); ctxErr != nil {
			span.RecordError(ctxErr)
			span.SetStatus(codes.Error, ctxErr.Error())
			return nil, ctxErr
		}
		if err != nil {
			slog.Warn("extraction strategy failed", "strategy", s.Name(), "error", err)
			continue
		}
		if len(found) > 0 {
			claims = dedupeClaims(found)
			metrics.ExtractedClaims.WithLabelValues(s.Name()).Add(float64(len(claims)))
			span.SetAttributes(attribute.String("extract.strategy", s.Name()))
			break
		}
		slog.Info("extraction strategy found no claims", "strategy", s.Name())
	}

	sink.Emit(progress.Event{
		Stage:   progress.StageExtractDone,
		Found:   len(claims),
		Message: fmt.Sprintf("Completed! Found %d unique facts", len(claims)),
	})
	span.SetAttributes(attribute.Int("extract.claims", len(claims)))
	span.SetStatus(codes.Ok, "")
	return claims, nil
}

// WholeTextStrategy sends the full text in one model call
type WholeTextStrategy struct {
	c *completer
}

func (s *WholeTextStrategy) Name() string { return "whole_text" }

func (s *WholeTextStrategy) Extract(ctx context.Context, text string, sink progress.Sink) ([]string, error) {
	sink.Emit(progress.Event{Stage: progress.StageExtractFull, Message: "Analyzing full text..."})

	claims, err := s.c.claims(ctx, text)
	if err != nil {
		sink.Emit(progress.Event{
			Stage:   progress.StageExtractFull,
			Message: "Full text processing error. Falling back to chunk processing...",
		})
		return nil, err
	}
	if len(claims) == 0 {
		sink.Emit(progress.Event{
			Stage:   progress.StageExtractFull,
			Message: "No facts in full text. Switching to chunk-based processing...",
		})
		return nil, nil
	}

	sink.Emit(progress.Event{
		Stage:   progress.StageExtractFull,
		Found:   len(claims),
		Message: fmt.Sprintf("Extracted %d facts from full text", len(claims)),
	})
	return claims, nil
}

// ChunkedStrategy processes paragraphs (or sentences) one at a time.
// A failing chunk is skipped.
type ChunkedStrategy struct {
	c     *completer
	delay time.Duration
}

func (s *ChunkedStrategy) Name() string { return "chunked" }

func (s *ChunkedStrategy) Extract(ctx context.Context, text string, sink progress.Sink) ([]string, error) {
	chunks := splitChunks(text)
	sink.Emit(progress.Event{
		Stage:   progress.StageExtractChunks,
		Total:   len(chunks),
		Message: fmt.Sprintf("Breaking text into %d chunks for processing...", len(chunks)),
	})

	var all []string
	for i, chunk := range chunks {
		sink.Emit(progress.Event{
			Stage:   progress.StageExtractChunk,
			Index:   i + 1,
			Total:   len(chunks),
			Found:   len(all),
			Message: fmt.Sprintf("Processing chunk %d of %d...", i+1, len(chunks)),
		})

		found, err := s.c.claims(ctx, chunk)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			metrics.ExtractionChunkFailures.Inc()
			slog.Warn("chunk extraction failed", "chunk", i+1, "of", len(chunks), "error", err)
			sink.Emit(progress.Event{
				Stage:   progress.StageExtractChunk,
				Index:   i + 1,
				Total:   len(chunks),
				Found:   len(all),
				Message: "Error processing chunk, continuing with next chunk...",
			})
		case len(found) == 0:
			sink.Emit(progress.Event{
				Stage:   progress.StageExtractChunk,
				Index:   i + 1,
				Total:   len(chunks),
				Found:   len(all),
				Message: "No facts found",
			})
		default:
			all = append(all, found...)
			sink.Emit(progress.Event{
				Stage:   progress.StageExtractChunk,
				Index:   i + 1,
				Total:   len(chunks),
				Found:   len(all),
				Message: fmt.Sprintf("Found %d facts (%d total so far)", len(found), len(all)),
			})
		}

		if i < len(chunks)-1 {
			if err := sleepFunc(ctx, s.delay); err != nil {
				return nil, err
			}
		}
	}

	return dedupeClaims(all), nil
}

// completer runs the extraction prompt and decodes {"claims": [...]}
type completer struct {
	provider llm.Provider
	model    string
}

type claimsPayload struct {
	Claims []string `json:"claims"`
}

func (c *completer) claims(ctx context.Context, text string) ([]string, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model:  c.model,
		System: extractionSystem,
		Prompt: extractionPrompt(text),
		Format: llm.FormatJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	var payload claimsPayload
	if err := llm.DecodeJSON(resp.Text, &payload); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}

	claims := make([]string, 0, len(payload.Claims))
	for _, claim := range payload.Claims {
		if claim = strings.TrimSpace(claim); claim != "" {
			claims = append(claims, claim)
		}
	}
	return claims, nil
}
