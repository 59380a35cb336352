package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ppiankov/claimcheck/internal/metrics"
)

var tracer = otel.Tracer("claimcheck.llm")

// tracedProvider records one span and one latency sample per completion
type tracedProvider struct {
	Provider
}

// WithTracing wraps a provider so every Complete call produces a span and
// a duration observation
func WithTracing(p Provider) Provider {
	if _, ok := p.(tracedProvider); ok {
		return p
	}
	return tracedProvider{Provider: p}
}

func (t tracedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, span := tracer.Start(ctx, "llm.Complete",
		trace.WithAttributes(
			attribute.String("llm.provider", t.Name()),
			attribute.String("llm.format", string(req.Format)),
			attribute.Int("llm.prompt_chars", len(req.Prompt)),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := t.Provider.Complete(ctx, req)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LLMCompletionDuration.WithLabelValues(t.Name(), outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("llm.model", resp.Model),
		attribute.Int("llm.tokens_used", resp.TokensUsed),
	)
	span.SetStatus(codes.Ok, "")
	return resp, nil
}
