// Package service defines the interfaces that connect the engine to its
// collaborators: the read-only context store, the evaluation store, and the
// optional embedding service.
package service

import (
	"context"
	"time"

	"github.com/hindsight-cli/hindsight/internal/model"
)

// ContextStore is the read-only view of user history the engine aggregates
// from. No writes ever originate from the engine.
type ContextStore interface {
	// GetUserProfile returns the profile/budget/onboarding read for a user.
	GetUserProfile(ctx context.Context, userID string) (*model.UserProfile, error)

	// GetRatedPurchases returns up to limit purchases rated inside the given
	// window, most recent first.
	GetRatedPurchases(ctx context.Context, userID string, window model.HistoryWindow, limit int) ([]model.PastPurchase, error)

	// GetSimilarityPool returns up to limit purchases from the window as
	// candidates for similarity ranking, with any pre-computed embeddings.
	GetSimilarityPool(ctx context.Context, userID string, window model.HistoryWindow, limit int) ([]model.PastPurchase, error)

	// GetSwipeOutcomes returns up to limit swipe outcomes for purchases in
	// the given category, most recent first.
	GetSwipeOutcomes(ctx context.Context, userID string, category model.Category, limit int) ([]model.SwipeOutcome, error)

	// FindVendor resolves a vendor reference row by fuzzy name match,
	// preferring a category-scoped match over an unscoped one over a
	// substring-only one. Returns common.ErrNotFound when nothing matches.
	FindVendor(ctx context.Context, name string, category model.Category) (*model.VendorMatch, error)
}

// EvaluationStore persists engine output. The engine itself never writes;
// the EvaluateAndSave wrapper does.
type EvaluationStore interface {
	SaveEvaluation(ctx context.Context, result *model.EvaluationResult) error
	GetEvaluation(ctx context.Context, id string) (*model.EvaluationResult, error)
	ListEvaluations(ctx context.Context, userID string, limit int) ([]model.EvaluationResult, error)
}

// Embedder converts a batch of text strings into equal-length numeric
// vectors, consumed only for similarity ranking.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts int
	Delay       time.Duration
}
