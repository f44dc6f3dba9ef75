package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					goals TEXT,
					monthly_budget REAL,
					discretionary_budget REAL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS onboarding_answers (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL,
					question_key TEXT NOT NULL,
					value INTEGER NOT NULL,
					scale INTEGER NOT NULL DEFAULT 5,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id),
					UNIQUE (user_id, question_key)
				)`,
				`CREATE INDEX idx_onboarding_answers_user ON onboarding_answers(user_id)`,

				`CREATE TABLE IF NOT EXISTS purchases (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					title TEXT NOT NULL,
					category TEXT NOT NULL,
					vendor TEXT,
					justification TEXT,
					price REAL,
					outcome TEXT,
					rated_at DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id)
				)`,
				`CREATE INDEX idx_purchases_user_rated ON purchases(user_id, rated_at)`,
				`CREATE INDEX idx_purchases_category ON purchases(category)`,

				`CREATE TABLE IF NOT EXISTS swipes (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL,
					category TEXT NOT NULL,
					outcome TEXT NOT NULL,
					swiped_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id)
				)`,
				`CREATE INDEX idx_swipes_user_category ON swipes(user_id, category, swiped_at)`,

				`CREATE TABLE IF NOT EXISTS vendors (
					name TEXT NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					quality TEXT NOT NULL,
					reliability TEXT NOT NULL,
					price_tier TEXT NOT NULL,
					last_updated DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (name, category)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add evaluations table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS evaluations (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					title TEXT NOT NULL,
					category TEXT NOT NULL,
					vendor TEXT,
					justification TEXT,
					price REAL,
					important INTEGER NOT NULL DEFAULT 0,
					outcome TEXT NOT NULL,
					confidence REAL NOT NULL,
					algorithm TEXT NOT NULL,
					reasoning TEXT NOT NULL,
					degraded INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					FOREIGN KEY (user_id) REFERENCES users(id)
				)`,
				`CREATE INDEX idx_evaluations_user_created ON evaluations(user_id, created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add purchase embeddings for similarity ranking",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`ALTER TABLE purchases ADD COLUMN embedding BLOB`)
			return err
		},
	},
}

// Migrate applies all pending migrations and verifies the final version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
