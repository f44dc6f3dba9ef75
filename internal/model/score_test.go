package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below range", -0.3, 0},
		{"at zero", 0, 0},
		{"inside range", 0.42, 0.42},
		{"at one", 1, 1},
		{"above range", 1.7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp01(tt.in))
		})
	}
}

func TestSignalSetClamp(t *testing.T) {
	s := SignalSet{
		ValueConflict:   ScoreExplanation{Score: 1.8},
		FinancialStrain: ScoreExplanation{Score: -0.2},
		LongTermUtility: ScoreExplanation{Score: 0.6},
	}
	s.Clamp()

	assert.Equal(t, 1.0, s.ValueConflict.Score)
	assert.Equal(t, 0.0, s.FinancialStrain.Score)
	assert.Equal(t, 0.6, s.LongTermUtility.Score)

	for _, ns := range s.All() {
		assert.GreaterOrEqual(t, ns.Signal.Score, 0.0, ns.Name)
		assert.LessOrEqual(t, ns.Signal.Score, 1.0, ns.Name)
	}
}

func TestSignalSetAllOrder(t *testing.T) {
	var s SignalSet
	names := make([]string, 0, 8)
	for _, ns := range s.All() {
		names = append(names, ns.Name)
	}
	assert.Equal(t, []string{
		"value_conflict", "pattern_repetition", "emotional_impulse", "financial_strain",
		"long_term_utility", "emotional_support", "short_term_regret", "long_term_regret",
	}, names)
}

func TestSwipeOutcomeRepetitionValue(t *testing.T) {
	tests := []struct {
		outcome SwipeOutcome
		want    float64
		ok      bool
	}{
		{SwipeRegret, 0, true},
		{SwipeUncertain, 0.5, true},
		{SwipeSatisfied, 1, true},
		{SwipeOutcome("meh"), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.outcome.RepetitionValue()
		assert.Equal(t, tt.ok, ok, string(tt.outcome))
		assert.Equal(t, tt.want, got, string(tt.outcome))
	}
}
