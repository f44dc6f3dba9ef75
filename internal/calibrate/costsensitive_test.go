package calibrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hindsight-cli/hindsight/internal/model"
)

func TestRecalibratePinsEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, recalibrate(0))
	assert.Equal(t, 1.0, recalibrate(1))
}

func TestRecalibrateHitsAnchors(t *testing.T) {
	for _, a := range calibrationAnchors {
		assert.InDelta(t, a.calibrated, recalibrate(a.raw), 1e-9, "anchor %.2f", a.raw)
	}
}

func TestRecalibrateIsMonotone(t *testing.T) {
	prev := -1.0
	for raw := 0.0; raw <= 1.0; raw += 0.01 {
		got := recalibrate(raw)
		require.GreaterOrEqual(t, got, prev, "raw %.2f", raw)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 1.0)
		prev = got
	}
}

func TestRecalibrateInterpolatesBetweenAnchors(t *testing.T) {
	// Midway between (0.4, 0.38) and (0.5, 0.52).
	assert.InDelta(t, 0.45, recalibrate(0.45), 1e-9)
}

func TestCostSensitiveOutcomes(t *testing.T) {
	strategy := &CostSensitive{Weights: DefaultWeights()}

	tests := []struct {
		name    string
		signals model.SignalSet
		want    model.Outcome
	}{
		{
			// logit = -1.1 alone -> sigmoid ≈ 0.25 -> calibrated well
			// below the buy threshold.
			name:    "all zero signals buy",
			signals: model.SignalSet{},
			want:    model.OutcomeBuy,
		},
		{
			// logit = -1.1 + 1.9 + 1.5 = 2.3 -> sigmoid ≈ 0.91 -> skip.
			name: "high strain and impulse skip",
			signals: model.SignalSet{
				FinancialStrain:  model.ScoreExplanation{Score: 1.0},
				EmotionalImpulse: model.ScoreExplanation{Score: 1.0},
			},
			want: model.OutcomeSkip,
		},
		{
			// logit = -1.1 + 1.9 - 1.3*0.6 = 0.02 -> sigmoid ≈ 0.505 ->
			// calibrated ≈ 0.52, inside the hold band.
			name: "strain offset by utility holds",
			signals: model.SignalSet{
				FinancialStrain: model.ScoreExplanation{Score: 1.0},
				LongTermUtility: model.ScoreExplanation{Score: 0.6},
			},
			want: model.OutcomeHold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := strategy.Decide(tt.signals, nil)
			assert.Equal(t, tt.want, decision.Outcome)
			assert.GreaterOrEqual(t, decision.Confidence, 0.5)
			assert.LessOrEqual(t, decision.Confidence, costSensitiveConfCeiling)
		})
	}
}

func TestCostSensitiveSkipsEarlierThanStandard(t *testing.T) {
	// The asymmetric thresholds exist so borderline-risky purchases tip to
	// skip before the standard weighting would.
	signals := model.SignalSet{
		FinancialStrain:  model.ScoreExplanation{Score: 0.9},
		EmotionalImpulse: model.ScoreExplanation{Score: 0.8},
		ValueConflict:    model.ScoreExplanation{Score: 0.5},
	}

	standard := (&Standard{Weights: DefaultWeights()}).Decide(signals, nil)
	costSensitive := (&CostSensitive{Weights: DefaultWeights()}).Decide(signals, nil)

	assert.Equal(t, model.OutcomeHold, standard.Outcome)
	assert.Equal(t, model.OutcomeSkip, costSensitive.Outcome)
}

func TestCostSensitiveConfidenceCeiling(t *testing.T) {
	strategy := &CostSensitive{Weights: DefaultWeights()}

	// logit = -1.1 - 1.3 - 0.8 = -3.2 -> calibrated p ≈ 0.016, far below the
	// buy threshold. The raw confidence formula would exceed 1.0 here.
	decision := strategy.Decide(model.SignalSet{
		LongTermUtility:  model.ScoreExplanation{Score: 1.0},
		EmotionalSupport: model.ScoreExplanation{Score: 1.0},
	}, nil)

	assert.Equal(t, model.OutcomeBuy, decision.Outcome)
	assert.InDelta(t, 0.95, decision.Confidence, 1e-9)
}

func TestCostSensitiveConfidenceNearThreshold(t *testing.T) {
	strategy := &CostSensitive{Weights: DefaultWeights()}

	// Deep in skip territory the confidence should beat a verdict sitting
	// right at the hold midpoint.
	deepSkip := strategy.Decide(model.SignalSet{
		FinancialStrain:  model.ScoreExplanation{Score: 1.0},
		EmotionalImpulse: model.ScoreExplanation{Score: 1.0},
		ValueConflict:    model.ScoreExplanation{Score: 1.0},
	}, nil)
	midHold := strategy.Decide(model.SignalSet{
		FinancialStrain: model.ScoreExplanation{Score: 1.0},
		LongTermUtility: model.ScoreExplanation{Score: 0.6},
	}, nil)

	assert.Greater(t, deepSkip.Confidence, midHold.Confidence)
}
