package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/claimcheck/internal/extract"
	"github.com/ppiankov/claimcheck/internal/llm/llmtest"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/store"
)

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, *model.Claim) error {
	return errors.New("feed unavailable")
}

func newTestPipeline(answer string, publisher store.Publisher) *Pipeline {
	provider := llmtest.Static(answer)
	verifier := NewVerifier(
		&stubGatherer{bundle: wikiBundle()},
		&stubInterpreter{verdict: model.Verdict{Category: model.CategoryVerified, Explanation: "Consistent with the sources.", Confidence: 88}},
		nil, nil, Options{},
	)

	cfg := model.DefaultConfig()
	cfg.LLM.Model = "test-model"
	return NewPipelineWith(cfg, Components{
		Provider:  provider,
		Extractor: extract.NewClaimExtractor(provider, extract.Options{}),
		Verifier:  verifier,
		Publisher: publisher,
	})
}

func TestCheck_EndToEnd(t *testing.T) {
	withoutSleep(t)
	input := "Paris is the capital of France. The Eiffel Tower is 324 meters tall."
	p := newTestPipeline(`{"claims": ["Paris is the capital of France.", "The Eiffel Tower is 324 meters tall."]}`, nil)

	r, err := p.Check(context.Background(), input, nil)
	require.NoError(t, err)

	assert.Equal(t, input, r.InputText)
	require.Len(t, r.Claims, 2)
	for _, c := range r.Claims {
		assert.Equal(t, model.StageVerified, c.Stage)
		assert.Equal(t, model.StatusVerified, c.Status)
		require.NotNil(t, c.Verification)
		assert.Equal(t, 88, c.Verification.Confidence)
	}
	assert.Equal(t, 2, r.Summary.Total)
	assert.Equal(t, 2, r.Summary.Verified)
	require.NotNil(t, r.LLM)
	assert.Equal(t, "llmtest", r.LLM.Provider)
	assert.Equal(t, "test-model", r.LLM.Model)
}

func TestCheck_NoClaims(t *testing.T) {
	withoutSleep(t)
	p := newTestPipeline(`{"claims": []}`, nil)

	_, err := p.Check(context.Background(), "Hello there, how are you?", nil)
	assert.ErrorIs(t, err, extract.ErrNoClaims)
}

func TestCheck_PublishFailure(t *testing.T) {
	withoutSleep(t)
	p := newTestPipeline(`{"claims": ["Water boils at 100 degrees Celsius at sea level."]}`, failingPublisher{})

	_, err := p.Check(context.Background(), "Water boils at 100 degrees Celsius at sea level.", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed unavailable")
}

func TestExtract_StoresClaims(t *testing.T) {
	p := newTestPipeline(`{"claims": ["Mount Everest is 8849 meters tall."]}`, nil)
	s := store.New()

	claims, err := p.Extract(context.Background(), "Mount Everest is 8849 meters tall.", s, nil)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, model.StageExtracted, claims[0].Stage)
}
