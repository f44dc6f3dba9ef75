package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/hindsight-cli/hindsight/internal/config"
	"github.com/hindsight-cli/hindsight/internal/embedding"
	"github.com/hindsight-cli/hindsight/internal/engine"
	"github.com/hindsight-cli/hindsight/internal/llm"
	"github.com/hindsight-cli/hindsight/internal/service"
	"github.com/hindsight-cli/hindsight/internal/storage"
)

// initStorage opens the database and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/hindsight/hindsight.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initScorer builds the completion scorer from config. A missing API key is
// not fatal: the engine falls back to rule-based scoring.
func initScorer() engine.VerdictScorer {
	apiKey := viper.GetString("llm.api_key")
	if apiKey == "" {
		slog.Warn("no llm.api_key configured, evaluations will use rule-based scoring")
		return nil
	}

	client, err := llm.NewClient(llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      apiKey,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	})
	if err != nil {
		slog.Warn("failed to create completion client, evaluations will use rule-based scoring", "error", err)
		return nil
	}
	return llm.NewScorer(client, slog.Default())
}

// initEmbedder builds the optional embeddings client. Without it similarity
// ranking degrades to category filtering.
func initEmbedder() service.Embedder {
	apiKey := viper.GetString("embeddings.api_key")
	if apiKey == "" && viper.GetString("llm.provider") != "anthropic" {
		// Anthropic keys don't work against the embeddings API
		apiKey = viper.GetString("llm.api_key")
	}
	if apiKey == "" {
		return nil
	}

	client, err := embedding.NewClient(embedding.Config{
		APIKey: apiKey,
		Model:  viper.GetString("embeddings.model"),
	})
	if err != nil {
		slog.Warn("failed to create embeddings client, similarity ranking will use category filtering", "error", err)
		return nil
	}
	return client
}

// initEngine wires storage, scorer, and embedder into an engine.
func initEngine(ctx context.Context) (*engine.Engine, *storage.SQLiteStorage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(store, store, initEmbedder(), initScorer(), slog.Default())
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return eng, store, nil
}

// currentUserID resolves the acting user from flag/config, defaulting to
// the single-user installation id.
func currentUserID() string {
	if user := viper.GetString("user"); user != "" {
		return user
	}
	return "default"
}
