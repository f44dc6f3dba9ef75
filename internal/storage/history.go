package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hindsight-cli/hindsight/internal/common"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// GetUserProfile loads a user row together with its onboarding answers.
func (s *SQLiteStorage) GetUserProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	profile := model.UserProfile{UserID: userID}
	var goals sql.NullString
	var monthly, discretionary sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT goals, monthly_budget, discretionary_budget FROM users WHERE id = ?`,
		userID).Scan(&goals, &monthly, &discretionary)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	profile.Goals = goals.String
	profile.MonthlyBudget = monthly.Float64
	profile.DiscretionaryBudget = discretionary.Float64

	rows, err := s.db.QueryContext(ctx,
		`SELECT question_key, value, scale FROM onboarding_answers WHERE user_id = ? ORDER BY question_key`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding answers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var a model.OnboardingAnswer
		if err := rows.Scan(&a.QuestionKey, &a.Value, &a.Scale); err != nil {
			return nil, fmt.Errorf("failed to scan onboarding answer: %w", err)
		}
		profile.Answers = append(profile.Answers, a)
	}
	return &profile, rows.Err()
}

// SaveUserProfile inserts or replaces a user row and its answers.
func (s *SQLiteStorage) SaveUserProfile(ctx context.Context, profile *model.UserProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("%w: profile", ErrNilParameter)
	}
	if err := validateString(profile.UserID, "profile.UserID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, goals, monthly_budget, discretionary_budget)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			goals = excluded.goals,
			monthly_budget = excluded.monthly_budget,
			discretionary_budget = excluded.discretionary_budget`,
		profile.UserID, profile.Goals, profile.MonthlyBudget, profile.DiscretionaryBudget)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	for _, a := range profile.Answers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO onboarding_answers (user_id, question_key, value, scale)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(user_id, question_key) DO UPDATE SET
				value = excluded.value,
				scale = excluded.scale`,
			profile.UserID, a.QuestionKey, a.Value, a.Scale)
		if err != nil {
			return fmt.Errorf("failed to save onboarding answer %s: %w", a.QuestionKey, err)
		}
	}

	return tx.Commit()
}

// windowClause returns the rated_at predicate for a history window.
func windowClause(window model.HistoryWindow) (string, error) {
	switch window {
	case model.WindowRecent:
		return fmt.Sprintf("rated_at >= datetime('now', '-%d days')", model.RecentWindowDays), nil
	case model.WindowLongTerm:
		return fmt.Sprintf("rated_at <= datetime('now', '-%d days')", model.LongTermWindowDays), nil
	}
	return "", fmt.Errorf("unknown history window: %q", window)
}

// GetRatedPurchases returns up to limit rated purchases inside the window,
// most recent first.
func (s *SQLiteStorage) GetRatedPurchases(ctx context.Context, userID string, window model.HistoryWindow, limit int) ([]model.PastPurchase, error) {
	return s.queryPurchases(ctx, userID, window, limit)
}

// GetSimilarityPool returns up to limit purchases from the window as
// candidates for similarity ranking.
func (s *SQLiteStorage) GetSimilarityPool(ctx context.Context, userID string, window model.HistoryWindow, limit int) ([]model.PastPurchase, error) {
	return s.queryPurchases(ctx, userID, window, limit)
}

func (s *SQLiteStorage) queryPurchases(ctx context.Context, userID string, window model.HistoryWindow, limit int) ([]model.PastPurchase, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	clause, err := windowClause(window)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT title, category, COALESCE(vendor, ''), COALESCE(justification, ''),
		       COALESCE(outcome, ''), COALESCE(price, 0), rated_at, embedding
		FROM purchases
		WHERE user_id = ? AND rated_at IS NOT NULL AND %s
		ORDER BY rated_at DESC
		LIMIT ?`, clause)

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var purchases []model.PastPurchase
	for rows.Next() {
		var (
			p        model.PastPurchase
			category string
			outcome  string
			blob     []byte
		)
		if err := rows.Scan(&p.Title, &category, &p.Vendor, &p.Justification, &outcome, &p.Price, &p.RatedAt, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		p.Category = model.Category(category)
		p.Outcome = model.SwipeOutcome(outcome)
		if len(blob) > 0 {
			p.Embedding, err = decodeEmbedding(blob)
			if err != nil {
				return nil, fmt.Errorf("failed to decode embedding for %q: %w", p.Title, err)
			}
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// GetSwipeOutcomes returns up to limit swipe outcomes in the category, most
// recent first.
func (s *SQLiteStorage) GetSwipeOutcomes(ctx context.Context, userID string, category model.Category, limit int) ([]model.SwipeOutcome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome FROM swipes
		WHERE user_id = ? AND category = ?
		ORDER BY swiped_at DESC
		LIMIT ?`, userID, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var outcomes []model.SwipeOutcome
	for rows.Next() {
		var outcome string
		if err := rows.Scan(&outcome); err != nil {
			return nil, fmt.Errorf("failed to scan swipe: %w", err)
		}
		outcomes = append(outcomes, model.SwipeOutcome(outcome))
	}
	return outcomes, rows.Err()
}

// Embeddings are stored as little-endian float32 blobs.

func encodeEmbedding(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	buf := new(bytes.Buffer)
	for _, v := range vec {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}
	return buf.Bytes()
}

func decodeEmbedding(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
