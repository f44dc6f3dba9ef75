package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hindsight-cli/hindsight/internal/gather"
	"github.com/hindsight-cli/hindsight/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func emptyBundle() *gather.Bundle {
	return &gather.Bundle{
		PatternRepetition: model.ScoreExplanation{Score: 0, Explanation: "No category history."},
	}
}

func TestScoreAccumulatesRiskRules(t *testing.T) {
	// price > 100 (+15), impulse-prone category (+20), "want" without
	// "need" (+10) = risk 45.
	candidate := model.CandidatePurchase{
		Title:         "Mechanical keyboard",
		Category:      model.CategoryElectronics,
		Justification: "I really want a nicer board for my desk setup",
		Price:         floatPtr(150),
	}

	result := Score(candidate, emptyBundle())

	assert.InDelta(t, 0.6*0.45, result.Signals.ValueConflict.Score, 1e-9)
	assert.InDelta(t, 0.7*0.45, result.Signals.EmotionalImpulse.Score, 1e-9)
	assert.Equal(t, 0.5, result.Signals.LongTermUtility.Score)
	assert.Equal(t, 0.0, result.Signals.FinancialStrain.Score)
	assert.NotEmpty(t, result.Rationale)
}

func TestScoreIsDeterministic(t *testing.T) {
	candidate := model.CandidatePurchase{
		Title:         "Flash sale smart watch",
		Category:      model.CategoryElectronics,
		Justification: "want",
		Price:         floatPtr(250),
	}

	first := Score(candidate, emptyBundle())
	second := Score(candidate, emptyBundle())
	assert.Equal(t, first, second)
}

func TestScoreRiskCapsAtOne(t *testing.T) {
	// Every rule fires plus luxury tier points: 30+20+25+10+20+12 > 100.
	candidate := model.CandidatePurchase{
		Title:         "Limited edition watch",
		Category:      model.CategoryFashion,
		Justification: "want",
		Price:         floatPtr(900),
	}
	bundle := emptyBundle()
	bundle.Vendor = &model.VendorMatch{
		Name:        "Atelier",
		Quality:     model.RatingHigh,
		Reliability: model.RatingHigh,
		PriceTier:   model.TierLuxury,
	}

	result := Score(candidate, bundle)

	assert.InDelta(t, 0.6, result.Signals.ValueConflict.Score, 1e-9)
	assert.InDelta(t, 0.7, result.Signals.EmotionalImpulse.Score, 1e-9)
}

func TestScoreUtilityFromVendorQuality(t *testing.T) {
	candidate := model.CandidatePurchase{
		Title:         "Cast iron skillet",
		Category:      model.CategoryHome,
		Justification: "replacing the pan we use for every dinner",
	}
	bundle := emptyBundle()
	bundle.Vendor = &model.VendorMatch{
		Name:        "Forgecraft",
		Quality:     model.RatingHigh,
		Reliability: model.RatingMedium,
		PriceTier:   model.TierMid,
	}

	result := Score(candidate, bundle)
	assert.Equal(t, 0.8, result.Signals.LongTermUtility.Score)
}

func TestScorePassesThroughPatternRepetition(t *testing.T) {
	candidate := model.CandidatePurchase{
		Title:         "Board game",
		Category:      model.CategoryHobbies,
		Justification: "game night with friends every week, we need variety",
	}
	bundle := emptyBundle()
	bundle.PatternRepetition = model.ScoreExplanation{Score: 0.75, Explanation: "Mostly satisfied with hobby buys."}

	result := Score(candidate, bundle)
	require.Equal(t, bundle.PatternRepetition, result.Signals.PatternRepetition)
}

func TestScoreAllSignalsClamped(t *testing.T) {
	result := Score(model.CandidatePurchase{
		Title:    "Pen",
		Category: model.CategoryOther,
	}, emptyBundle())

	for _, ns := range result.Signals.All() {
		assert.GreaterOrEqual(t, ns.Signal.Score, 0.0, ns.Name)
		assert.LessOrEqual(t, ns.Signal.Score, 1.0, ns.Name)
	}
}
