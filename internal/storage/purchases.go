package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hindsight-cli/hindsight/internal/model"
)

// SaveRatedPurchase records a historical purchase together with its swipe
// outcome, and mirrors the swipe into the swipes table so the
// pattern-repetition query sees it. Returns the new purchase id.
func (s *SQLiteStorage) SaveRatedPurchase(ctx context.Context, userID string, purchase *model.PastPurchase) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(userID, "userID"); err != nil {
		return "", err
	}
	if purchase == nil {
		return "", fmt.Errorf("%w: purchase", ErrNilParameter)
	}
	if err := validateString(purchase.Title, "purchase.Title"); err != nil {
		return "", err
	}
	if _, ok := purchase.Outcome.RepetitionValue(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, purchase.Outcome)
	}

	ratedAt := purchase.RatedAt
	if ratedAt.IsZero() {
		ratedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO purchases (id, user_id, title, category, vendor, justification, price, outcome, rated_at, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, purchase.Title, string(purchase.Category), purchase.Vendor,
		purchase.Justification, purchase.Price, string(purchase.Outcome), ratedAt,
		encodeEmbedding(purchase.Embedding))
	if err != nil {
		return "", fmt.Errorf("failed to save purchase: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO swipes (user_id, category, outcome, swiped_at)
		VALUES (?, ?, ?, ?)`,
		userID, string(purchase.Category), string(purchase.Outcome), ratedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save swipe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit purchase: %w", err)
	}
	return id, nil
}

// UpdatePurchaseEmbedding attaches a pre-computed embedding to a purchase.
func (s *SQLiteStorage) UpdatePurchaseEmbedding(ctx context.Context, purchaseID string, embedding []float32) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(purchaseID, "purchaseID"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE purchases SET embedding = ? WHERE id = ?`,
		encodeEmbedding(embedding), purchaseID)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}
