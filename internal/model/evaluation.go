package model

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the final buy/hold/skip recommendation. A hold is a recommended
// delay before purchase, not a rejection.
type Outcome string

// Verdict outcomes.
const (
	OutcomeBuy  Outcome = "buy"
	OutcomeHold Outcome = "hold"
	OutcomeSkip Outcome = "skip"
)

// ParseOutcome normalizes free-form verdict text into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(strings.ToLower(strings.TrimSpace(s))) {
	case OutcomeBuy:
		return OutcomeBuy, nil
	case OutcomeHold:
		return OutcomeHold, nil
	case OutcomeSkip:
		return OutcomeSkip, nil
	}
	return "", fmt.Errorf("unknown outcome: %q", s)
}

// Algorithm selects which decision calibration branch runs. It is persisted
// alongside the result so a later regeneration reuses the same algorithm.
type Algorithm string

// Calibration algorithms.
const (
	AlgorithmStandard      Algorithm = "standard"
	AlgorithmCostSensitive Algorithm = "cost-sensitive-calibrated"
	AlgorithmLLMOnly       Algorithm = "llm-only"
)

// ParseAlgorithm normalizes free-form text into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case AlgorithmStandard, "":
		return AlgorithmStandard, nil
	case AlgorithmCostSensitive:
		return AlgorithmCostSensitive, nil
	case AlgorithmLLMOnly:
		return AlgorithmLLMOnly, nil
	}
	return "", fmt.Errorf("unknown algorithm: %q", s)
}

// Reasoning is the explainable breakdown attached to every verdict.
type Reasoning struct {
	Signals             SignalSet `json:"signals"`
	AlternativeSolution string    `json:"alternative_solution,omitempty"`
	Rationale           string    `json:"rationale"`
	Important           bool      `json:"important"`
	Algorithm           Algorithm `json:"algorithm"`
}

// EvaluationResult is the engine's sole output: created once, immutable,
// handed to the caller for persistence.
type EvaluationResult struct {
	CreatedAt  time.Time
	ID         string
	UserID     string
	Candidate  CandidatePurchase
	Reasoning  Reasoning
	Outcome    Outcome
	Confidence float64
	Degraded   bool // true when the heuristic fallback produced the signals
}

// Validate checks the invariants every result must satisfy.
func (r *EvaluationResult) Validate() error {
	switch r.Outcome {
	case OutcomeBuy, OutcomeHold, OutcomeSkip:
	default:
		return fmt.Errorf("invalid outcome: %q", r.Outcome)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %.3f", r.Confidence)
	}
	for _, ns := range r.Reasoning.Signals.All() {
		if ns.Signal.Score < 0 || ns.Signal.Score > 1 {
			return fmt.Errorf("signal %s out of range: %.3f", ns.Name, ns.Signal.Score)
		}
	}
	return nil
}
