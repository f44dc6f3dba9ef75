// Package engine orchestrates a full purchase evaluation: context
// gathering, prompt construction, completion scoring with bounded retries,
// the rule-based fallback, and final calibration. Every call that enters
// with a valid candidate leaves with a usable result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hindsight-cli/hindsight/internal/calibrate"
	"github.com/hindsight-cli/hindsight/internal/gather"
	"github.com/hindsight-cli/hindsight/internal/heuristic"
	"github.com/hindsight-cli/hindsight/internal/llm"
	"github.com/hindsight-cli/hindsight/internal/model"
	"github.com/hindsight-cli/hindsight/internal/prompt"
	"github.com/hindsight-cli/hindsight/internal/service"
)

// VerdictScorer abstracts the completion scorer so tests can inject
// deterministic doubles.
type VerdictScorer interface {
	Score(ctx context.Context, req llm.Request) (*llm.Verdict, error)
}

// Engine evaluates candidate purchases.
type Engine struct {
	store    service.ContextStore
	evals    service.EvaluationStore
	gatherer *gather.Aggregator
	prompts  *prompt.Builder
	scorer   VerdictScorer // nil when no completion credential is configured
	weights  calibrate.Weights
	logger   *slog.Logger
}

// New builds an engine. embedder and scorer may be nil; the engine then
// runs with category-filtered similarity and the rule-based scorer
// respectively.
func New(store service.ContextStore, evals service.EvaluationStore, embedder service.Embedder, scorer VerdictScorer, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	builder, err := prompt.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt builder: %w", err)
	}
	return &Engine{
		store:    store,
		evals:    evals,
		gatherer: gather.New(store, embedder, logger),
		prompts:  builder,
		scorer:   scorer,
		weights:  calibrate.DefaultWeights(),
		logger:   logger,
	}, nil
}

// Evaluate scores one candidate for a user and returns the calibrated
// result. The only errors it returns are candidate validation failures and
// context cancellation; completion-service trouble degrades to the
// rule-based scorer instead.
func (e *Engine) Evaluate(ctx context.Context, userID string, candidate model.CandidatePurchase, algorithm model.Algorithm) (*model.EvaluationResult, error) {
	return e.evaluate(ctx, userID, candidate, algorithm, false)
}

func (e *Engine) evaluate(ctx context.Context, userID string, candidate model.CandidatePurchase, algorithm model.Algorithm, regeneration bool) (*model.EvaluationResult, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	bundle, err := e.gatherer.Gather(ctx, userID, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to gather purchase context: %w", err)
	}

	verdict := e.scoreWithCompletion(ctx, candidate, bundle, algorithm, regeneration)

	var (
		signals     model.SignalSet
		rationale   string
		alternative string
		degraded    bool
	)
	if verdict != nil {
		signals = verdict.Signals
		rationale = verdict.Rationale
		alternative = verdict.AlternativeSolution
	} else {
		fallback := heuristic.Score(candidate, bundle)
		signals = fallback.Signals
		rationale = fallback.Rationale
		alternative = fallback.AlternativeSolution
		degraded = true
	}

	decision := calibrate.ForAlgorithm(algorithm, e.weights).Decide(signals, verdict)
	if verdict != nil && verdict.Overridden {
		// The essential-purchase override is binding across strategies.
		decision.Outcome = model.OutcomeBuy
	}

	result := &model.EvaluationResult{
		CreatedAt: time.Now().UTC(),
		ID:        uuid.NewString(),
		UserID:    userID,
		Candidate: candidate,
		Reasoning: model.Reasoning{
			Signals:             signals,
			AlternativeSolution: alternative,
			Rationale:           rationale,
			Important:           candidate.Important,
			Algorithm:           algorithm,
		},
		Outcome:    decision.Outcome,
		Confidence: decision.Confidence,
		Degraded:   degraded,
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("produced an invalid result: %w", err)
	}

	e.logger.Info("evaluation complete",
		"id", result.ID,
		"outcome", result.Outcome,
		"confidence", result.Confidence,
		"algorithm", algorithm,
		"degraded", degraded)

	return result, nil
}

// scoreWithCompletion runs the completion scorer and returns nil on any
// failure, leaving the caller on the fallback path.
func (e *Engine) scoreWithCompletion(ctx context.Context, candidate model.CandidatePurchase, bundle *gather.Bundle, algorithm model.Algorithm, regeneration bool) *llm.Verdict {
	if e.scorer == nil {
		e.logger.Warn("no completion credential configured, using rule-based scoring")
		return nil
	}

	prompts, err := e.prompts.Build(candidate, bundle)
	if err != nil {
		e.logger.Warn("prompt construction failed, using rule-based scoring", "error", err)
		return nil
	}

	verdict, err := e.scorer.Score(ctx, llm.Request{
		Prompts:      prompts,
		Candidate:    candidate,
		Vendor:       bundle.Vendor,
		Algorithm:    algorithm,
		Regeneration: regeneration,
	})
	if err != nil {
		e.logger.Warn("completion scoring failed, using rule-based scoring", "error", err)
		return nil
	}
	return verdict
}

// EvaluateAndSave evaluates and persists the result in one step.
func (e *Engine) EvaluateAndSave(ctx context.Context, userID string, candidate model.CandidatePurchase, algorithm model.Algorithm) (*model.EvaluationResult, error) {
	result, err := e.Evaluate(ctx, userID, candidate, algorithm)
	if err != nil {
		return nil, err
	}
	if err := e.evals.SaveEvaluation(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	return result, nil
}

// Regenerate re-evaluates a stored result's candidate with the same
// algorithm, under the reduced retry cap, and persists the fresh result.
func (e *Engine) Regenerate(ctx context.Context, evaluationID string) (*model.EvaluationResult, error) {
	prev, err := e.evals.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation %s: %w", evaluationID, err)
	}

	result, err := e.evaluate(ctx, prev.UserID, prev.Candidate, prev.Reasoning.Algorithm, true)
	if err != nil {
		return nil, err
	}
	if err := e.evals.SaveEvaluation(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	return result, nil
}
