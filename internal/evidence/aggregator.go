// Package evidence gathers the evidence bundle for a claim from the
// encyclopedia and web searchers and turns it into display sources.
package evidence

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ppiankov/claimcheck/internal/evidence/adapters"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/progress"
)

var tracer = otel.Tracer("claimcheck.evidence")

// Progress percentages reported while gathering
const (
	percentEncyclopediaStart = 10
	percentEncyclopediaDone  = 40
	percentWebStart          = 50
	percentWebDone           = 70
)

// Aggregator queries the encyclopedia, then the web, and bundles the
// results. Searches run sequentially so progress is reported in order.
type Aggregator struct {
	encyclopedia adapters.Searcher
	web          adapters.Searcher
}

// NewAggregator creates an aggregator over the two searchers
func NewAggregator(encyclopedia, web adapters.Searcher) *Aggregator {
	return &Aggregator{encyclopedia: encyclopedia, web: web}
}

// Gather collects evidence for a claim. It never fails; an empty bundle
// means neither source had anything.
func (a *Aggregator) Gather(ctx context.Context, claimText string, sink progress.Sink) model.Bundle {
	sink = progress.OrDiscard(sink)

	ctx, span := tracer.Start(ctx, "evidence.Gather",
		trace.WithAttributes(attribute.Int("claim.chars", len(claimText))),
	)
	defer span.End()

	sink.Emit(progress.Event{Stage: progress.StageEncyclopedia, Percent: percentEncyclopediaStart, Message: "searching encyclopedia"})
	encyclopedia := a.search(ctx, a.encyclopedia, claimText)
	sink.Emit(progress.Event{
		Stage:   progress.StageEncyclopedia,
		Percent: percentEncyclopediaDone,
		Found:   len(encyclopedia),
		Message: fmt.Sprintf("%d encyclopedia results", len(encyclopedia)),
	})

	sink.Emit(progress.Event{Stage: progress.StageWeb, Percent: percentWebStart, Message: "searching the web"})
	web := a.search(ctx, a.web, claimText)
	found := len(encyclopedia) + len(web)
	sink.Emit(progress.Event{
		Stage:   progress.StageWeb,
		Percent: percentWebDone,
		Found:   found,
		Message: fmt.Sprintf("%d web results", len(web)),
	})

	bundle := model.NewBundle(claimText, encyclopedia, web)
	span.SetAttributes(
		attribute.Int("evidence.encyclopedia", len(encyclopedia)),
		attribute.Int("evidence.web", len(web)),
		attribute.Int("evidence.bundle", bundle.Len()),
	)
	return bundle
}

func (a *Aggregator) search(ctx context.Context, searcher adapters.Searcher, query string) []model.EvidenceRecord {
	if searcher == nil {
		return nil
	}

	ctx, span := tracer.Start(ctx, "evidence.Search",
		trace.WithAttributes(attribute.String("evidence.source", searcher.Name())),
	)
	defer span.End()

	records := searcher.Search(ctx, query)
	span.SetAttributes(attribute.Int("evidence.results", len(records)))
	return records
}
