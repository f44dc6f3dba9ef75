package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hindsight-cli/hindsight/internal/common"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// SaveEvaluation persists a finished evaluation. The reasoning breakdown is
// stored as a JSON column so the schema stays stable as signals evolve.
func (s *SQLiteStorage) SaveEvaluation(ctx context.Context, result *model.EvaluationResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvaluation(result); err != nil {
		return err
	}

	reasoning, err := json.Marshal(result.Reasoning)
	if err != nil {
		return fmt.Errorf("failed to marshal reasoning: %w", err)
	}

	var price any
	if result.Candidate.Price != nil {
		price = *result.Candidate.Price
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, user_id, title, category, vendor, justification,
			price, important, outcome, confidence, algorithm, reasoning, degraded, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.UserID,
		result.Candidate.Title, string(result.Candidate.Category),
		result.Candidate.Vendor, result.Candidate.Justification,
		price, result.Candidate.Important,
		string(result.Outcome), result.Confidence,
		string(result.Reasoning.Algorithm), string(reasoning),
		result.Degraded, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	return nil
}

// GetEvaluation loads one evaluation by id.
func (s *SQLiteStorage) GetEvaluation(ctx context.Context, id string) (*model.EvaluationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, category, vendor, justification,
		       price, important, outcome, confidence, reasoning, degraded, created_at
		FROM evaluations WHERE id = ?`, id)

	result, err := scanEvaluation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("evaluation %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation: %w", err)
	}
	return result, nil
}

// ListEvaluations returns up to limit evaluations for a user, most recent
// first.
func (s *SQLiteStorage) ListEvaluations(ctx context.Context, userID string, limit int) ([]model.EvaluationResult, error) {
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
		SELECT id, user_id, title, category, vendor, justification,
		       price, important, outcome, confidence, reasoning, degraded, created_at
		FROM evaluations WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.EvaluationResult
	for rows.Next() {
		result, err := scanEvaluation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		results = append(results, *result)
	}
	return results, rows.Err()
}

// scanEvaluation reads one evaluation row through the given scan function.
func scanEvaluation(scan func(...any) error) (*model.EvaluationResult, error) {
	var (
		result    model.EvaluationResult
		category  string
		outcome   string
		price     sql.NullFloat64
		reasoning string
	)
	err := scan(
		&result.ID, &result.UserID,
		&result.Candidate.Title, &category,
		&result.Candidate.Vendor, &result.Candidate.Justification,
		&price, &result.Candidate.Important,
		&outcome, &result.Confidence,
		&reasoning, &result.Degraded, &result.CreatedAt)
	if err != nil {
		return nil, err
	}

	result.Candidate.Category = model.Category(category)
	if price.Valid {
		p := price.Float64
		result.Candidate.Price = &p
	}
	result.Outcome = model.Outcome(outcome)
	if err := json.Unmarshal([]byte(reasoning), &result.Reasoning); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reasoning: %w", err)
	}
	return &result, nil
}
