// Package interpret turns an evidence bundle into a verdict, either with a
// language model or with a source-count heuristic when the model fails.
package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
)

var tracer = otel.Tracer("claimcheck.interpret")

// ErrInvalidVerdict is returned when the model answers with something that
// is not a usable verdict
var ErrInvalidVerdict = errors.New("invalid verdict")

// Options tunes the engine
type Options struct {
	// Model overrides the provider's default model
	Model     string
	MaxTokens int
}

// Engine asks a language model to judge a claim against its evidence
type Engine struct {
	provider llm.Provider
	opts     Options
}

// NewEngine creates an interpretation engine
func NewEngine(provider llm.Provider, opts Options) *Engine {
	return &Engine{provider: provider, opts: opts}
}

type rawVerdict struct {
	Status      string          `json:"status"`
	Explanation string          `json:"explanation"`
	Confidence  json.RawMessage `json:"confidence"`
}

// Interpret requests a verdict at temperature 0 in JSON mode. A response
// with an unknown status, an empty explanation or a missing confidence is
// an error.
func (e *Engine) Interpret(ctx context.Context, claimText string, bundle model.Bundle) (model.Verdict, error) {
	ctx, span := tracer.Start(ctx, "interpret.Interpret",
		trace.WithAttributes(attribute.Int("evidence.records", bundle.Len())),
	)
	defer span.End()

	verdict, err := e.interpret(ctx, claimText, bundle)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Verdict{}, err
	}

	span.SetAttributes(
		attribute.String("verdict.category", string(verdict.Category)),
		attribute.Int("verdict.confidence", verdict.Confidence),
	)
	span.SetStatus(codes.Ok, "")
	return verdict, nil
}

func (e *Engine) interpret(ctx context.Context, claimText string, bundle model.Bundle) (model.Verdict, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:       e.opts.Model,
		System:      interpretationSystem,
		Prompt:      interpretationPrompt(claimText, bundle),
		Format:      llm.FormatJSON,
		Temperature: 0,
		MaxTokens:   e.opts.MaxTokens,
	})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("interpretation completion: %w", err)
	}

	var raw rawVerdict
	if err := llm.DecodeJSON(resp.Text, &raw); err != nil {
		return model.Verdict{}, fmt.Errorf("%w: %w", ErrInvalidVerdict, err)
	}

	category, ok := model.ParseCategory(raw.Status)
	if !ok {
		return model.Verdict{}, fmt.Errorf("%w: unknown status %q", ErrInvalidVerdict, raw.Status)
	}

	explanation := strings.TrimSpace(raw.Explanation)
	if explanation == "" {
		return model.Verdict{}, fmt.Errorf("%w: empty explanation", ErrInvalidVerdict)
	}

	confidence, err := parseConfidence(raw.Confidence)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("%w: %w", ErrInvalidVerdict, err)
	}

	return model.Verdict{
		Category:    category,
		Explanation: explanation,
		Confidence:  model.ClampConfidence(confidence),
	}, nil
}

// parseConfidence accepts a JSON number or a numeric string, rounding
// fractional values
func parseConfidence(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, errors.New("missing confidence")
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return int(math.Round(number)), nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSuffix(strings.TrimSpace(text), "%")
		if number, err := strconv.ParseFloat(text, 64); err == nil {
			return int(math.Round(number)), nil
		}
	}

	return 0, fmt.Errorf("confidence is not a number: %s", raw)
}
