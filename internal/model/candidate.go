// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidCandidate indicates a candidate purchase that fails validation
// before any context gathering happens.
var ErrInvalidCandidate = errors.New("invalid candidate purchase")

// Category is a coarse product category for a purchase.
type Category string

// Known product categories.
const (
	CategoryElectronics   Category = "electronics"
	CategoryFashion       Category = "fashion"
	CategoryHome          Category = "home"
	CategoryBeauty        Category = "beauty"
	CategorySports        Category = "sports"
	CategoryBooks         Category = "books"
	CategoryToys          Category = "toys"
	CategoryGroceries     Category = "groceries"
	CategoryHealth        Category = "health"
	CategoryTravel        Category = "travel"
	CategoryEntertainment Category = "entertainment"
	CategoryHobbies       Category = "hobbies"
	CategoryOther         Category = "other"
)

var validCategories = map[Category]bool{
	CategoryElectronics:   true,
	CategoryFashion:       true,
	CategoryHome:          true,
	CategoryBeauty:        true,
	CategorySports:        true,
	CategoryBooks:         true,
	CategoryToys:          true,
	CategoryGroceries:     true,
	CategoryHealth:        true,
	CategoryTravel:        true,
	CategoryEntertainment: true,
	CategoryHobbies:       true,
	CategoryOther:         true,
}

// ParseCategory normalizes free-form category text into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return "", nil
	}
	if !validCategories[c] {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// IsValid reports whether the category is a known value or empty.
func (c Category) IsValid() bool {
	return c == "" || validCategories[c]
}

// CandidatePurchase describes a prospective or past purchase under evaluation.
// It is created per evaluation request and never persisted by the engine itself.
type CandidatePurchase struct {
	Title         string
	Category      Category
	Vendor        string
	Justification string
	Price         *float64 // nil when the user did not supply one
	Important     bool
}

// Validate rejects malformed candidates before any context gathering happens.
func (c *CandidatePurchase) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCandidate)
	}
	if c.Price != nil {
		if math.IsNaN(*c.Price) || math.IsInf(*c.Price, 0) {
			return fmt.Errorf("%w: price is not a number", ErrInvalidCandidate)
		}
		if *c.Price < 0 {
			return fmt.Errorf("%w: price cannot be negative", ErrInvalidCandidate)
		}
	}
	if !c.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidCandidate, c.Category)
	}
	return nil
}

// EmbeddingText builds the text representation used for similarity ranking:
// title, category, vendor and justification joined by a delimiter, capped at
// 500 characters.
func (c *CandidatePurchase) EmbeddingText() string {
	return JoinEmbeddingText(c.Title, string(c.Category), c.Vendor, c.Justification)
}

const embeddingTextLimit = 500

// JoinEmbeddingText concatenates non-empty parts with " | " and truncates the
// result to the fixed embedding input limit.
func JoinEmbeddingText(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	s := strings.Join(kept, " | ")
	if len(s) > embeddingTextLimit {
		s = s[:embeddingTextLimit]
	}
	return s
}
