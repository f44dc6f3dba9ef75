// Package calibrate turns a scored signal set into a final outcome and
// confidence. Three interchangeable strategies are provided; all of them
// honor the same contract: given clamped signals they always return a
// valid outcome and a confidence in [0,1].
package calibrate

import (
	"github.com/hindsight-cli/hindsight/internal/llm"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// Decision is the calibrated output.
type Decision struct {
	Outcome    model.Outcome
	Confidence float64
}

// Strategy maps signals (and, when available, the raw completion verdict)
// to a decision. verdict is nil when the signals came from the rule-based
// fallback.
type Strategy interface {
	Decide(signals model.SignalSet, verdict *llm.Verdict) Decision
}

// ForAlgorithm returns the strategy registered for the given algorithm.
// Unknown values get the standard strategy.
func ForAlgorithm(alg model.Algorithm, weights Weights) Strategy {
	switch alg {
	case model.AlgorithmCostSensitive:
		return &CostSensitive{Weights: weights}
	case model.AlgorithmLLMOnly:
		return &LLMOnly{Fallback: &Standard{Weights: weights}}
	default:
		return &Standard{Weights: weights}
	}
}
