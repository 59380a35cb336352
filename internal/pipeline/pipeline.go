// Package pipeline runs the claim pipeline: extraction, publication and
// evidence-based verification, ending in a report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/claimcheck/internal/cache"
	"github.com/ppiankov/claimcheck/internal/evidence"
	"github.com/ppiankov/claimcheck/internal/evidence/adapters"
	"github.com/ppiankov/claimcheck/internal/extract"
	"github.com/ppiankov/claimcheck/internal/interpret"
	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/progress"
	"github.com/ppiankov/claimcheck/internal/reconcile"
	"github.com/ppiankov/claimcheck/internal/report"
	"github.com/ppiankov/claimcheck/internal/store"
	"github.com/ppiankov/claimcheck/internal/util"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// Pipeline orchestrates a complete check
type Pipeline struct {
	provider  llm.Provider
	extractor *extract.ClaimExtractor
	verifier  *Verifier
	publisher store.Publisher
	config    *model.Config
}

// Components are the collaborators of a pipeline, for callers that build
// them themselves
type Components struct {
	Provider  llm.Provider
	Extractor *extract.ClaimExtractor
	Verifier  *Verifier
	Publisher store.Publisher
}

// NewPipeline builds a pipeline from configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	detector, err := reconcile.ForLanguage(cfg.Pipeline.Language)
	if err != nil {
		return nil, fmt.Errorf("reconciler: %w", err)
	}

	client := util.NewHTTPClient(cfg.HTTP, cfg.HTTP.Timeout)
	limiter := worker.NewLimiterFromConfig(cfg.RateLimiting)
	encyclopedia, web := adapters.NewSearchers(cfg, client, limiter, cache.New(cfg.Cache))

	extractor := extract.NewClaimExtractor(provider, extract.Options{
		Model:      cfg.LLM.Model,
		ChunkDelay: cfg.Pipeline.ChunkDelay,
	})
	verifier := NewVerifier(
		evidence.NewAggregator(encyclopedia, web),
		interpret.NewEngine(provider, interpret.Options{Model: cfg.LLM.Model, MaxTokens: cfg.LLM.MaxTokens}),
		reconcile.New(detector),
		evidence.NewAuthorityClassifier(&cfg.Authority),
		Options{ClaimPause: cfg.Pipeline.ClaimPause},
	)

	return NewPipelineWith(cfg, Components{
		Provider:  provider,
		Extractor: extractor,
		Verifier:  verifier,
		Publisher: store.LogPublisher{},
	}), nil
}

// NewPipelineWith assembles a pipeline from prebuilt components
func NewPipelineWith(cfg *model.Config, c Components) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if c.Publisher == nil {
		c.Publisher = store.LogPublisher{}
	}
	return &Pipeline{
		provider:  c.Provider,
		extractor: c.Extractor,
		verifier:  c.Verifier,
		publisher: c.Publisher,
		config:    cfg,
	}
}

// Provider returns the language model provider
func (p *Pipeline) Provider() llm.Provider {
	return p.provider
}

// Verifier returns the claim verifier
func (p *Pipeline) Verifier() *Verifier {
	return p.verifier
}

// LLMInfo describes the model used, for reports
func (p *Pipeline) LLMInfo() *model.LLMInfo {
	if p.provider == nil {
		return nil
	}
	return &model.LLMInfo{Provider: p.provider.Name(), Model: p.config.LLM.Model}
}

// Extract extracts claims from text into the store. Finding no claims is
// an ErrNoClaims error carrying a hint for the user.
func (p *Pipeline) Extract(ctx context.Context, text string, s *store.Store, sink progress.Sink) ([]*model.Claim, error) {
	texts, err := p.extractor.Extract(ctx, text, sink)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	if len(texts) == 0 {
		return nil, extract.NoClaimsError(text)
	}
	return s.AddExtracted(texts), nil
}

// Publish publishes every extracted claim in the store
func (p *Pipeline) Publish(ctx context.Context, s *store.Store) (int, error) {
	return store.PublishAll(ctx, s, p.publisher, p.config.Pipeline.PublishWorkers)
}

// Verify verifies every published claim in the store
func (p *Pipeline) Verify(ctx context.Context, s *store.Store, sink progress.Sink) (int, error) {
	return p.verifier.VerifyAll(ctx, s, sink)
}

// Check runs the whole pipeline on text, publishing every extracted claim
// without curation, and returns the report
func (p *Pipeline) Check(ctx context.Context, text string, sink progress.Sink) (*model.Report, error) {
	s := store.New()

	if _, err := p.Extract(ctx, text, s, sink); err != nil {
		return nil, err
	}

	published, err := p.Publish(ctx, s)
	if err != nil {
		// Claims that failed to publish stay extracted and are reported as pending
		slog.Warn("some claims were not published", "error", err)
	}
	if published == 0 {
		return nil, fmt.Errorf("no claims published: %w", err)
	}

	if _, err := p.Verify(ctx, s, sink); err != nil {
		return nil, fmt.Errorf("verify claims: %w", err)
	}

	return report.Build(text, s.List(), p.LLMInfo(), time.Now()), nil
}
