package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/hindsight-cli/hindsight/internal/common"
	"github.com/hindsight-cli/hindsight/internal/model"
	"github.com/hindsight-cli/hindsight/internal/service"
)

// Writer exports evaluation history to a Google Sheets spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new exporter.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{config: config, service: svc, logger: logger}, nil
}

// Write replaces the spreadsheet's contents with the given evaluations,
// most recent first.
func (w *Writer) Write(ctx context.Context, evaluations []model.EvaluationResult) error {
	w.logger.Info("starting evaluation export", "evaluations", len(evaluations))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := prepareRows(evaluations)

	retryOpts := service.RetryOptions{
		MaxAttempts: w.config.RetryAttempts,
		Delay:       w.config.RetryDelay,
	}
	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("evaluation export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// prepareRows flattens evaluations into sheet rows with a header.
func prepareRows(evaluations []model.EvaluationResult) [][]any {
	values := [][]any{{
		"Date", "Title", "Category", "Vendor", "Price", "Important",
		"Verdict", "Confidence", "Algorithm", "Degraded", "Rationale",
	}}
	for _, e := range evaluations {
		price := ""
		if e.Candidate.Price != nil {
			price = fmt.Sprintf("%.2f", *e.Candidate.Price)
		}
		values = append(values, []any{
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Candidate.Title,
			string(e.Candidate.Category),
			e.Candidate.Vendor,
			price,
			e.Candidate.Important,
			string(e.Outcome),
			fmt.Sprintf("%.2f", e.Confidence),
			string(e.Reasoning.Algorithm),
			e.Degraded,
			e.Reasoning.Rationale,
		})
	}
	return values
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath) // #nosec G304 -- path from operator config
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return svc, nil
}

// getOrCreateSpreadsheet resolves the configured spreadsheet, creating one
// when no ID was provided.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: w.config.SpreadsheetName,
		},
	}
	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"title", w.config.SpreadsheetName)

	return created.SpreadsheetId, nil
}

// clearSheet wipes the first sheet's contents.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear values: %w", err)
	}
	return nil
}

// writeData writes all rows starting at A1.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	valueRange := &sheets.ValueRange{Values: values}
	_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, "A1", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	return nil
}
