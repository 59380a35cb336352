// Package store holds the claims of one session. Claims are keyed by id
// and only ever replaced whole, so concurrent completions can never land
// on the wrong claim.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
)

// ErrNotFound is returned for an unknown claim id
var ErrNotFound = errors.New("claim not found")

// Store is an in-memory, id-keyed claim store safe for concurrent use.
// Callers always receive copies.
type Store struct {
	mu           sync.RWMutex
	claims       map[string]*model.Claim
	order        []string // Insertion order
	publishOrder []string
	now          func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		claims: make(map[string]*model.Claim),
		now:    time.Now,
	}
}

// SetClock replaces the time source used for transitions
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddExtracted creates one extracted claim per text and returns them
func (s *Store) AddExtracted(texts []string) []*model.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	added := make([]*model.Claim, 0, len(texts))
	for _, text := range texts {
		claim := model.NewClaim(text, now)
		s.claims[claim.ID] = claim
		s.order = append(s.order, claim.ID)
		added = append(added, claim.Clone())
	}
	return added
}

// Get returns a copy of the claim with the given id
func (s *Store) Get(id string) (*model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return claim.Clone(), nil
}

// Len returns the number of claims
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.claims)
}

// List returns copies of all claims in insertion order
func (s *Store) List() []*model.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.order, nil)
}

// ByStage returns copies of the claims at stage, in insertion order
func (s *Store) ByStage(stage model.Stage) []*model.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.order, func(c *model.Claim) bool { return c.Stage == stage })
}

// Published returns copies of the claims awaiting verification, in the
// order they were published
func (s *Store) Published() []*model.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.publishOrder, func(c *model.Claim) bool { return c.Stage == model.StagePublished })
}

func (s *Store) collect(ids []string, keep func(*model.Claim) bool) []*model.Claim {
	out := make([]*model.Claim, 0, len(ids))
	for _, id := range ids {
		claim := s.claims[id]
		if keep == nil || keep(claim) {
			out = append(out, claim.Clone())
		}
	}
	return out
}

// Upsert inserts or replaces a claim by id after validating it. A claim
// may not move backwards through the lifecycle.
func (s *Store) Upsert(claim *model.Claim) error {
	if err := claim.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.claims[claim.ID]
	if !ok {
		s.order = append(s.order, claim.ID)
		if claim.Stage == model.StagePublished {
			s.publishOrder = append(s.publishOrder, claim.ID)
		}
		s.claims[claim.ID] = claim.Clone()
		return nil
	}

	return s.replace(existing, claim.Clone())
}

// Update applies fn to a copy of the claim and stores the result. The
// stored claim is untouched when fn fails.
func (s *Store) Update(id string, fn func(c *model.Claim, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.claims[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := existing.Clone()
	if err := fn(updated, s.now()); err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	return s.replace(existing, updated)
}

// replace swaps existing for updated; the caller holds the write lock
func (s *Store) replace(existing, updated *model.Claim) error {
	if updated.Stage.Before(existing.Stage) {
		return fmt.Errorf("%w: claim %s cannot move from %s back to %s",
			model.ErrIllegalTransition, existing.ID, existing.Stage, updated.Stage)
	}
	if existing.Stage == model.StageExtracted && updated.Stage == model.StagePublished {
		s.publishOrder = append(s.publishOrder, updated.ID)
	}
	s.claims[updated.ID] = updated
	return nil
}

// Edit replaces the text of an extracted claim
func (s *Store) Edit(id, text string) error {
	return s.Update(id, func(c *model.Claim, _ time.Time) error {
		return c.Edit(text)
	})
}

// Publish moves an extracted claim to the published stage
func (s *Store) Publish(id string) error {
	return s.Update(id, func(c *model.Claim, now time.Time) error {
		return c.Publish(now)
	})
}

// Complete attaches a verification result to a published claim
func (s *Store) Complete(id string, result model.VerificationResult) error {
	return s.Update(id, func(c *model.Claim, now time.Time) error {
		return c.Complete(result, now)
	})
}
