package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hindsight-cli/hindsight/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidVendor    = errors.New("invalid vendor")
	ErrInvalidLimit     = errors.New("limit must be positive")
	ErrInvalidOutcome   = errors.New("invalid outcome")
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}

// validateVendorMatch validates a vendor reference row before writing it.
func validateVendorMatch(v *model.VendorMatch) error {
	if v == nil {
		return fmt.Errorf("%w: vendor", ErrNilParameter)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVendor, err)
	}
	return nil
}

// validateEvaluation validates a result before writing it.
func validateEvaluation(result *model.EvaluationResult) error {
	if result == nil {
		return fmt.Errorf("%w: result", ErrNilParameter)
	}
	if err := validateString(result.ID, "result.ID"); err != nil {
		return err
	}
	if err := validateString(result.UserID, "result.UserID"); err != nil {
		return err
	}
	if err := result.Validate(); err != nil {
		return err
	}
	if _, err := model.ParseAlgorithm(string(result.Reasoning.Algorithm)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAlgorithm, err)
	}
	return nil
}
