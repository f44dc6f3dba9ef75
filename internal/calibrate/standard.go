package calibrate

import (
	"github.com/hindsight-cli/hindsight/internal/llm"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// Standard thresholds on the composite risk score.
const (
	standardSkipThreshold = 0.7
	standardHoldThreshold = 0.4

	standardConfidenceBase = 0.5
	standardConfidenceGain = 0.9
)

// Standard is the additive weighted-sum strategy: risk signals add,
// protective signals subtract, and the clamped composite is thresholded.
type Standard struct {
	Weights Weights
}

// Decide computes the composite score and thresholds it. Confidence grows
// with distance from the 0.5 midpoint and is bounded to [0.5, 0.95].
func (s *Standard) Decide(signals model.SignalSet, _ *llm.Verdict) Decision {
	w := s.Weights
	score := w.StandardIntercept +
		w.StandardValueConflict*signals.ValueConflict.Score +
		w.StandardPatternRepeat*signals.PatternRepetition.Score +
		w.StandardEmotionalImpulse*signals.EmotionalImpulse.Score +
		w.StandardFinancialStrain*signals.FinancialStrain.Score -
		w.StandardLongTermUtility*signals.LongTermUtility.Score -
		w.StandardEmotionalSupport*signals.EmotionalSupport.Score
	score = model.Clamp01(score)

	outcome := model.OutcomeBuy
	switch {
	case score >= standardSkipThreshold:
		outcome = model.OutcomeSkip
	case score >= standardHoldThreshold:
		outcome = model.OutcomeHold
	}

	distance := score - 0.5
	if distance < 0 {
		distance = -distance
	}
	confidence := standardConfidenceBase + distance*standardConfidenceGain

	return Decision{Outcome: outcome, Confidence: model.Clamp01(confidence)}
}
