package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// Publisher announces a curated claim before it is verified
type Publisher interface {
	Publish(ctx context.Context, claim *model.Claim) error
}

// LogPublisher records each publication in the log and always succeeds
type LogPublisher struct {
	Logger *slog.Logger
}

// Publish logs the claim
func (p LogPublisher) Publish(ctx context.Context, claim *model.Claim) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "claim published", "id", claim.ID, "text", claim.Text)
	return nil
}

// PublishOne publishes a single extracted claim and moves it to the
// published stage. A publisher failure leaves the claim extracted.
func PublishOne(ctx context.Context, s *Store, pub Publisher, id string) error {
	claim, err := s.Get(id)
	if err != nil {
		return err
	}
	if claim.Stage != model.StageExtracted {
		return fmt.Errorf("%w: cannot publish %s claim %s", model.ErrIllegalTransition, claim.Stage, id)
	}

	if err := pub.Publish(ctx, claim); err != nil {
		metrics.Publications.WithLabelValues("failure").Inc()
		return fmt.Errorf("publish claim %s: %w", id, err)
	}
	if err := s.Publish(id); err != nil {
		metrics.Publications.WithLabelValues("failure").Inc()
		return err
	}

	metrics.Publications.WithLabelValues("success").Inc()
	return nil
}

// publishJob publishes one claim on a worker
type publishJob struct {
	store *Store
	pub   Publisher
	id    string
}

type publishResult struct {
	id  string
	err error
}

func (r publishResult) GetError() error { return r.err }

func (j publishJob) Execute(ctx context.Context) worker.Result {
	return publishResult{id: j.id, err: PublishOne(ctx, j.store, j.pub, j.id)}
}

// PublishAll publishes every extracted claim concurrently on a bounded
// worker pool. Each completion is merged into the store by id. It returns
// the number of claims published and the joined publication errors.
func PublishAll(ctx context.Context, s *Store, pub Publisher, workers int) (int, error) {
	extracted := s.ByStage(model.StageExtracted)
	if len(extracted) == 0 {
		return 0, nil
	}

	jobs := make([]worker.Job, 0, len(extracted))
	for _, claim := range extracted {
		jobs = append(jobs, publishJob{store: s, pub: pub, id: claim.ID})
	}

	results := worker.Run(ctx, workers, jobs)

	published := 0
	var errs []error
	for _, result := range results {
		if err := result.GetError(); err != nil {
			errs = append(errs, err)
			continue
		}
		published++
	}
	if missing := len(jobs) - len(results); missing > 0 {
		errs = append(errs, fmt.Errorf("%d publications not run: %w", missing, context.Cause(ctx)))
	}

	return published, errors.Join(errs...)
}
