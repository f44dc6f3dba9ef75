package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hindsight-cli/hindsight/internal/common"
	"github.com/hindsight-cli/hindsight/internal/model"
	"github.com/hindsight-cli/hindsight/internal/prompt"
	"github.com/hindsight-cli/hindsight/internal/service"
)

// Verdict is the validated completion-service result.
type Verdict struct {
	Signals             model.SignalSet
	Outcome             model.Outcome
	Confidence          float64
	AlternativeSolution string
	Rationale           string
	Overridden          bool // the essential-purchase override remapped the outcome
}

// Request carries everything one scoring attempt needs beyond the prompts.
type Request struct {
	Prompts      prompt.Prompts
	Candidate    model.CandidatePurchase
	Vendor       *model.VendorMatch
	Algorithm    model.Algorithm
	Regeneration bool // regeneration runs with a reduced retry cap
}

// Scorer issues completion requests and runs the acceptance chain, retrying
// a bounded number of times before giving up with a recoverable error.
type Scorer struct {
	client Client
	leaks  *LeakChecker
	logger *slog.Logger
}

// Retry caps. Failures here are content-validation failures, so retries are
// immediate and same-shaped, not backed off.
const (
	defaultAttempts      = 2
	regenerationAttempts = 1
)

// NewScorer creates a scorer over the given completion client.
func NewScorer(client Client, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{client: client, leaks: NewLeakChecker(), logger: logger}
}

// Score runs the bounded request/validate loop. Exhausting the cap returns
// an error wrapping common.ErrVerdictUnavailable, which the engine turns
// into the heuristic fallback path.
func (s *Scorer) Score(ctx context.Context, req Request) (*Verdict, error) {
	attempts := defaultAttempts
	if req.Regeneration {
		attempts = regenerationAttempts
	}

	var verdict *Verdict
	err := common.WithRetry(ctx, func() error {
		content, err := s.client.Complete(ctx, req.Prompts.System, req.Prompts.User)
		if err != nil {
			s.logger.Warn("completion request failed", "error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}

		v, err := s.validate(content, req)
		if err != nil {
			s.logger.Warn("completion response rejected", "error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}

		verdict = v
		return nil
	}, service.RetryOptions{MaxAttempts: attempts})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrVerdictUnavailable, err)
	}

	s.logger.Info("verdict accepted",
		"outcome", verdict.Outcome,
		"confidence", verdict.Confidence,
		"overridden", verdict.Overridden)

	return verdict, nil
}

// wireVerdict mirrors the JSON contract in the request prompt.
type wireVerdict struct {
	ValueConflict       model.ScoreExplanation `json:"value_conflict"`
	PatternRepetition   model.ScoreExplanation `json:"pattern_repetition"`
	EmotionalImpulse    model.ScoreExplanation `json:"emotional_impulse"`
	FinancialStrain     model.ScoreExplanation `json:"financial_strain"`
	LongTermUtility     model.ScoreExplanation `json:"long_term_utility"`
	EmotionalSupport    model.ScoreExplanation `json:"emotional_support"`
	ShortTermRegret     model.ScoreExplanation `json:"short_term_regret"`
	LongTermRegret      model.ScoreExplanation `json:"long_term_regret"`
	Verdict             string                 `json:"verdict"`
	Confidence          float64                `json:"confidence"`
	AlternativeSolution string                 `json:"alternative_solution"`
	Rationale           string                 `json:"rationale"`
}

// validate runs the acceptance chain over one raw reply: emptiness, JSON
// parse, score clamping, template-leak scan, the essential override, and
// the importance policy.
func (s *Scorer) validate(content string, req Request) (*Verdict, error) {
	content = cleanMarkdownWrapper(content)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty completion body")
	}

	var wire wireVerdict
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse verdict JSON: %w", err)
	}

	outcome, err := model.ParseOutcome(wire.Verdict)
	if err != nil {
		return nil, fmt.Errorf("invalid verdict field: %w", err)
	}

	v := &Verdict{
		Signals: model.SignalSet{
			ValueConflict:     wire.ValueConflict,
			PatternRepetition: wire.PatternRepetition,
			EmotionalImpulse:  wire.EmotionalImpulse,
			FinancialStrain:   wire.FinancialStrain,
			LongTermUtility:   wire.LongTermUtility,
			EmotionalSupport:  wire.EmotionalSupport,
			ShortTermRegret:   wire.ShortTermRegret,
			LongTermRegret:    wire.LongTermRegret,
		},
		Outcome:             outcome,
		Confidence:          model.Clamp01(wire.Confidence),
		AlternativeSolution: wire.AlternativeSolution,
		Rationale:           wire.Rationale,
	}
	v.Signals.Clamp()

	fields := map[string]string{
		"rationale":            v.Rationale,
		"alternative_solution": v.AlternativeSolution,
	}
	for _, ns := range v.Signals.All() {
		fields["explanation of "+ns.Name] = ns.Signal.Explanation
	}
	if err := s.leaks.Check(fields); err != nil {
		return nil, err
	}

	// The override is terminal: when it fires the verdict is accepted as
	// remapped and this specific case is never retried.
	if applyEssentialOverride(v, req.Candidate, req.Vendor) {
		s.logger.Info("essential purchase override applied",
			"title", req.Candidate.Title)
		return v, nil
	}

	if req.Algorithm == model.AlgorithmLLMOnly && req.Candidate.Important {
		if err := checkImportancePolicy(v); err != nil {
			return nil, err
		}
	}

	return v, nil
}
