package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/claimcheck/internal/model"
)

func TestReconcile_VerifiedContradicted(t *testing.T) {
	r := New(English())
	got := r.Reconcile("The Eiffel Tower is 500 meters tall.", model.CategoryVerified,
		"The claim contradicts the sources, which give a height of 330 meters.")
	assert.Equal(t, model.CategoryMisleading, got)
}

func TestReconcile_UnverifiedConfirmed(t *testing.T) {
	r := New(English())
	got := r.Reconcile("Paris is the capital of France.", model.CategoryUnverified,
		"The statement is confirmed by the sources.")
	assert.Equal(t, model.CategoryVerified, got)
}

func TestReconcile_Table(t *testing.T) {
	tests := []struct {
		name        string
		category    model.Category
		explanation string
		want        model.Category
	}{
		{"verified stays verified", model.CategoryVerified, "The sources confirm the founding year.", model.CategoryVerified},
		{"verified with pattern", model.CategoryVerified, "Actually, the tower was not built in 1900.", model.CategoryMisleading},
		{"misleading with weak wording", model.CategoryMisleading, "Both sources match the stated date.", model.CategoryMisleading},
		{"misleading with confirmation only", model.CategoryMisleading, "The date is consistent with the encyclopedia entry.", model.CategoryVerified},
		{"misleading keeps contradiction", model.CategoryMisleading, "The figure does not match the data; it is consistent with 2009.", model.CategoryMisleading},
		{"misleading with negated confirmation", model.CategoryMisleading, "The claim is not confirmed by any source.", model.CategoryMisleading},
		{"unverified contradicted", model.CategoryUnverified, "The statement is false according to the sources.", model.CategoryMisleading},
		{"unverified neutral", model.CategoryUnverified, "The sources do not discuss this topic.", model.CategoryUnverified},
		{"unverified unconfirmed", model.CategoryUnverified, "The figure could not be confirmed.", model.CategoryUnverified},
		{"unverified with negated confirm verb", model.CategoryUnverified, "The sources do not confirm this claim.", model.CategoryUnverified},
		{"unverified with contracted negation", model.CategoryUnverified, "The available sources don't confirm the date.", model.CategoryUnverified},
		{"unverified with curly apostrophe", model.CategoryUnverified, "Wikipedia doesn’t corroborate the figure.", model.CategoryUnverified},
		{"unverified not accurate", model.CategoryUnverified, "The claim is not accurate according to Wikipedia.", model.CategoryMisleading},
		{"unverified nothing corroborates", model.CategoryUnverified, "Nothing in the sources corroborates the statement; it is not correct.", model.CategoryMisleading},
		{"unverified nothing supports", model.CategoryUnverified, "Nothing in the encyclopedia entry confirms the date.", model.CategoryUnverified},
		{"misleading with negated confirm verb", model.CategoryMisleading, "The sources does not confirm the founding year.", model.CategoryMisleading},
		{"misleading not consistent", model.CategoryMisleading, "The figure is not consistent with the census.", model.CategoryMisleading},
		{"verified with no discrepancy", model.CategoryVerified, "Sources show no discrepancy; the claim is confirmed by the sources.", model.CategoryVerified},
		{"verified with negated predicate", model.CategoryVerified, "Sources show that the bridge was not opened in 1890.", model.CategoryMisleading},
		{"unknown category untouched", model.Category("other"), "contradicts everything", model.Category("other")},
		{"empty explanation", model.CategoryVerified, "", model.CategoryVerified},
	}

	r := New(English())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Reconcile("claim", tt.category, tt.explanation))
		})
	}
}

func TestReconcile_Russian(t *testing.T) {
	r := New(Russian())

	tests := []struct {
		name        string
		claim       string
		category    model.Category
		explanation string
		want        model.Category
	}{
		{
			name:        "verified but contradicted",
			claim:       "У Элона Маска нет детей",
			category:    model.CategoryVerified,
			explanation: "Утверждение противоречит источникам. Согласно Wikipedia и другим источникам, у Элона Маска есть дети. Источники показывают, что у него несколько детей от разных браков.",
			want:        model.CategoryMisleading,
		},
		{
			name:        "verified and confirmed",
			claim:       "Париж - столица Франции",
			category:    model.CategoryVerified,
			explanation: "Утверждение подтверждается всеми источниками. Париж действительно является столицей Франции согласно официальным данным.",
			want:        model.CategoryVerified,
		},
		{
			name:        "misleading kept",
			claim:       "Bitcoin был создан в 2010 году",
			category:    model.CategoryMisleading,
			explanation: "Утверждение не соответствует фактам. Bitcoin был создан в 2009 году, а не в 2010. Источники четко указывают на 2009 год как дату создания.",
			want:        model.CategoryMisleading,
		},
		{
			name:        "unverified with contradiction",
			claim:       "Марк Цукерберг не имеет высшего образования",
			category:    model.CategoryUnverified,
			explanation: "На самом деле источники показывают, что Марк Цукерберг учился в Гарварде, но не закончил обучение.",
			want:        model.CategoryMisleading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Reconcile(tt.claim, tt.category, tt.explanation))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	detector, err := ForLanguage("all")
	require.NoError(t, err)
	r := New(detector)

	explanations := []string{
		"The claim contradicts the sources.",
		"The statement is confirmed by the sources.",
		"No relevant information was found.",
		"Утверждение подтверждается всеми источниками.",
		"На самом деле у него есть дети.",
		"The figure does not match the data but the name is correct.",
	}
	categories := []model.Category{model.CategoryVerified, model.CategoryUnverified, model.CategoryMisleading}

	for _, e := range explanations {
		for _, c := range categories {
			once := r.Reconcile("claim", c, e)
			twice := r.Reconcile("claim", once, e)
			assert.Equal(t, once, twice, "category %s, explanation %q", c, e)
			assert.Equal(t, once, r.Reconcile("claim", c, e), "reconcile must be deterministic")
		}
	}
}

func TestKeywordDetector_MaskedConfirmation(t *testing.T) {
	d := English()

	assert.False(t, d.DetectsConfirmation("This is inaccurate."))
	assert.False(t, d.DetectsConfirmation("The claim is incorrect."))
	assert.False(t, d.DetectsConfirmation("It remains unconfirmed."))
	assert.True(t, d.DetectsConfirmation("The date is correct."))
	assert.False(t, d.DetectsConfirmation("The sources do not confirm this."))
	assert.False(t, d.DetectsConfirmation("No source corroborates the date."))
	assert.False(t, d.DetectsConfirmation("It is not correct."))

	ru := Russian()
	assert.False(t, ru.DetectsConfirmation("Это неверно."))
	assert.False(t, ru.DetectsConfirmation("Это утверждение неточно."))
	assert.True(t, ru.DetectsConfirmation("Дата указана верно."))
}

func TestForLanguage(t *testing.T) {
	for _, lang := range []string{"", "en", "ru", "all"} {
		d, err := ForLanguage(lang)
		require.NoError(t, err, lang)
		assert.NotNil(t, d)
	}

	_, err := ForLanguage("fr")
	assert.Error(t, err)
}

func TestMultiDetector(t *testing.T) {
	m := MultiDetector{English(), Russian()}

	assert.True(t, m.DetectsContradiction("Утверждение ложно."))
	assert.True(t, m.DetectsContradiction("This contradicts the record."))
	assert.True(t, m.DetectsConfirmation("Confirmed by two sources."))
	assert.False(t, m.DetectsConfirmation("Confirmed, but it contradicts the encyclopedia."))
}
