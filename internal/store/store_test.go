package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/claimcheck/internal/model"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestStore_Lifecycle(t *testing.T) {
	s := New()
	s.SetClock(fixedClock())

	added := s.AddExtracted([]string{"Paris is the capital of France.", "The Eiffel Tower is 324 meters tall."})
	require.Len(t, added, 2)
	assert.Equal(t, 2, s.Len())

	id := added[1].ID
	require.NoError(t, s.Edit(id, "The Eiffel Tower is 330 meters tall."))
	require.NoError(t, s.Publish(id))

	published := s.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "The Eiffel Tower is 330 meters tall.", published[0].Text)
	assert.Equal(t, model.StagePublished, published[0].Stage)

	err := s.Edit(id, "changed after publication")
	assert.True(t, errors.Is(err, model.ErrIllegalTransition))

	result := model.VerificationResult{Status: model.StatusVerified, Explanation: "Confirmed.", Confidence: 90}
	require.NoError(t, s.Complete(id, result))

	claim, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, model.StageVerified, claim.Stage)
	assert.Equal(t, model.StatusVerified, claim.Status)
	require.NoError(t, claim.Validate())

	assert.True(t, errors.Is(s.Complete(id, result), model.ErrIllegalTransition), "result attaches only once")
	assert.Empty(t, s.Published())
	assert.Len(t, s.ByStage(model.StageExtracted), 1)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	added := s.AddExtracted([]string{"Water boils at 100 degrees Celsius at sea level."})

	added[0].Text = "mutated"
	claim, err := s.Get(added[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Water boils at 100 degrees Celsius at sea level.", claim.Text)
}

func TestStore_EmptySourcesStayArrays(t *testing.T) {
	s := New()
	added := s.AddExtracted([]string{"Atlantis sank in 9600 BC."})
	id := added[0].ID
	require.NoError(t, s.Publish(id))
	require.NoError(t, s.Complete(id, model.VerificationResult{
		Status:      model.StatusUnverified,
		Explanation: "No sources found.",
		Sources:     []model.Source{},
	}))

	claims := s.List()
	require.Len(t, claims, 1)
	require.NotNil(t, claims[0].Verification)
	assert.NotNil(t, claims[0].Verification.Sources)

	raw, err := json.Marshal(claims[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sources":[]`)
	assert.NotContains(t, string(raw), `"sources":null`)
}

func TestStore_NotFound(t *testing.T) {
	s := New()
	_, err := s.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Publish("missing"), ErrNotFound))
}

func TestStore_UpsertRejectsRegression(t *testing.T) {
	s := New()
	now := time.Now()
	claim := model.NewClaim("Mount Everest is 8849 meters tall.", now)
	require.NoError(t, s.Upsert(claim))

	published := claim.Clone()
	require.NoError(t, published.Publish(now))
	require.NoError(t, s.Upsert(published))
	assert.Len(t, s.Published(), 1)

	err := s.Upsert(claim)
	assert.True(t, errors.Is(err, model.ErrIllegalTransition))

	stored, _ := s.Get(claim.ID)
	assert.Equal(t, model.StagePublished, stored.Stage)
}

func TestStore_UpsertValidates(t *testing.T) {
	s := New()
	claim := model.NewClaim("text", time.Now())
	claim.Status = model.StatusVerified
	assert.Error(t, s.Upsert(claim))
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentCompletionsKeyedByID(t *testing.T) {
	s := New()
	texts := []string{"a claim", "b claim", "c claim", "d claim", "e claim", "f claim"}
	added := s.AddExtracted(texts)
	for _, c := range added {
		require.NoError(t, s.Publish(c.ID))
	}

	var wg sync.WaitGroup
	for _, c := range added {
		wg.Add(1)
		go func(c *model.Claim) {
			defer wg.Done()
			_ = s.Complete(c.ID, model.VerificationResult{Status: model.StatusUnverified, Explanation: c.Text})
		}(c)
	}
	wg.Wait()

	for _, c := range s.List() {
		require.Equal(t, model.StageVerified, c.Stage)
		assert.Equal(t, c.Text, c.Verification.Explanation, "result merged into the wrong claim")
	}
}

type recordingPublisher struct {
	mu   sync.Mutex
	seen []string
	fail map[string]bool
}

func (p *recordingPublisher) Publish(_ context.Context, claim *model.Claim) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail[claim.Text] {
		return errors.New("publication rejected")
	}
	p.seen = append(p.seen, claim.ID)
	return nil
}

func TestPublishAll(t *testing.T) {
	s := New()
	s.AddExtracted([]string{
		"Paris is the capital of France.",
		"The Eiffel Tower is 330 meters tall.",
		"Water boils at 100 degrees Celsius at sea level.",
		"Frank Herbert wrote Dune.",
		"Mount Everest is the highest mountain on Earth.",
	})

	pub := &recordingPublisher{}
	published, err := PublishAll(context.Background(), s, pub, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, published)
	assert.Len(t, s.Published(), 5)
	assert.Len(t, pub.seen, 5)
	assert.Empty(t, s.ByStage(model.StageExtracted))

	for _, c := range s.List() {
		require.NoError(t, c.Validate())
		assert.NotNil(t, c.PublishedAt)
	}
}

func TestPublishAll_PartialFailure(t *testing.T) {
	s := New()
	s.AddExtracted([]string{"good one", "bad one", "good two"})

	pub := &recordingPublisher{fail: map[string]bool{"bad one": true}}
	published, err := PublishAll(context.Background(), s, pub, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publication rejected")
	assert.Equal(t, 2, published)

	extracted := s.ByStage(model.StageExtracted)
	require.Len(t, extracted, 1)
	assert.Equal(t, "bad one", extracted[0].Text)
}

func TestPublishAll_Empty(t *testing.T) {
	published, err := PublishAll(context.Background(), New(), LogPublisher{}, 4)
	assert.NoError(t, err)
	assert.Zero(t, published)
}

func TestPublishOne(t *testing.T) {
	s := New()
	added := s.AddExtracted([]string{"Frank Herbert wrote Dune."})

	require.NoError(t, PublishOne(context.Background(), s, LogPublisher{}, added[0].ID))
	err := PublishOne(context.Background(), s, LogPublisher{}, added[0].ID)
	assert.True(t, errors.Is(err, model.ErrIllegalTransition))
}
