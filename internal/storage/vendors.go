package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hindsight-cli/hindsight/internal/common"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// FindVendor resolves a vendor reference row for a candidate. Match
// precedence: exact name within the candidate's category, then exact name
// with no category scoping, then a substring match on the name. Returns
// common.ErrNotFound when nothing matches.
func (s *SQLiteStorage) FindVendor(ctx context.Context, name string, category model.Category) (*model.VendorMatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(name))

	queries := []struct {
		query string
		args  []any
	}{
		{
			query: `SELECT name, category, quality, reliability, price_tier
				FROM vendors WHERE LOWER(name) = ? AND category = ?`,
			args: []any{normalized, string(category)},
		},
		{
			query: `SELECT name, category, quality, reliability, price_tier
				FROM vendors WHERE LOWER(name) = ? AND category = ''`,
			args: []any{normalized},
		},
		{
			query: `SELECT name, category, quality, reliability, price_tier
				FROM vendors WHERE LOWER(name) LIKE ? ORDER BY name LIMIT 1`,
			args: []any{"%" + normalized + "%"},
		},
	}

	for _, q := range queries {
		vendor, err := s.scanVendor(ctx, q.query, q.args...)
		if err == nil {
			return vendor, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to query vendor: %w", err)
		}
	}

	return nil, fmt.Errorf("vendor %q: %w", name, common.ErrNotFound)
}

func (s *SQLiteStorage) scanVendor(ctx context.Context, query string, args ...any) (*model.VendorMatch, error) {
	var (
		vendor   model.VendorMatch
		category string
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&vendor.Name, &category, &vendor.Quality, &vendor.Reliability, &vendor.PriceTier)
	if err != nil {
		return nil, err
	}
	vendor.Category = model.Category(category)
	return &vendor, nil
}

// SaveVendor inserts or replaces a vendor reference row.
func (s *SQLiteStorage) SaveVendor(ctx context.Context, vendor *model.VendorMatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVendorMatch(vendor); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (name, category, quality, reliability, price_tier, last_updated)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name, category) DO UPDATE SET
			quality = excluded.quality,
			reliability = excluded.reliability,
			price_tier = excluded.price_tier,
			last_updated = CURRENT_TIMESTAMP`,
		vendor.Name, string(vendor.Category), string(vendor.Quality),
		string(vendor.Reliability), string(vendor.PriceTier))
	if err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}
	return nil
}

// DeleteVendor removes a vendor row. Deleting a missing vendor returns
// common.ErrNotFound.
func (s *SQLiteStorage) DeleteVendor(ctx context.Context, name string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM vendors WHERE LOWER(name) = ? AND category = ?`,
		strings.ToLower(strings.TrimSpace(name)), string(category))
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("vendor %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// ListVendors returns all vendor rows ordered by name then category.
func (s *SQLiteStorage) ListVendors(ctx context.Context) ([]model.VendorMatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, category, quality, reliability, price_tier
		FROM vendors ORDER BY name, category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vendors []model.VendorMatch
	for rows.Next() {
		var (
			vendor   model.VendorMatch
			category string
		)
		if err := rows.Scan(&vendor.Name, &category, &vendor.Quality, &vendor.Reliability, &vendor.PriceTier); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendor.Category = model.Category(category)
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}
