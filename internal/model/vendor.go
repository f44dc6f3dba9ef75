package model

import (
	"fmt"
	"strings"
)

// RatingLevel is an ordinal quality or reliability rating for a vendor.
type RatingLevel string

// Ordinal rating levels.
const (
	RatingLow    RatingLevel = "low"
	RatingMedium RatingLevel = "medium"
	RatingHigh   RatingLevel = "high"
)

// PriceTier is an ordinal price positioning for a vendor.
type PriceTier string

// Price tiers, cheapest first.
const (
	TierBudget  PriceTier = "budget"
	TierMid     PriceTier = "mid"
	TierPremium PriceTier = "premium"
	TierLuxury  PriceTier = "luxury"
)

var tierOrder = map[PriceTier]int{
	TierBudget:  0,
	TierMid:     1,
	TierPremium: 2,
	TierLuxury:  3,
}

// AtLeast reports whether the tier is at or above the given tier.
func (t PriceTier) AtLeast(other PriceTier) bool {
	a, okA := tierOrder[t]
	b, okB := tierOrder[other]
	return okA && okB && a >= b
}

// ParseRatingLevel normalizes free-form text into a RatingLevel.
func ParseRatingLevel(s string) (RatingLevel, error) {
	switch RatingLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RatingLow:
		return RatingLow, nil
	case RatingMedium:
		return RatingMedium, nil
	case RatingHigh:
		return RatingHigh, nil
	}
	return "", fmt.Errorf("unknown rating level: %q", s)
}

// ParsePriceTier normalizes free-form text into a PriceTier.
func ParsePriceTier(s string) (PriceTier, error) {
	switch PriceTier(strings.ToLower(strings.TrimSpace(s))) {
	case TierBudget:
		return TierBudget, nil
	case TierMid:
		return TierMid, nil
	case TierPremium:
		return TierPremium, nil
	case TierLuxury:
		return TierLuxury, nil
	}
	return "", fmt.Errorf("unknown price tier: %q", s)
}

// VendorMatch is a row from the vendor reference store. The engine looks
// vendors up but never mutates them.
type VendorMatch struct {
	Name        string
	Category    Category
	Quality     RatingLevel
	Reliability RatingLevel
	PriceTier   PriceTier
}

// Validate checks the ordinal ratings on a vendor reference row.
func (v *VendorMatch) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("vendor name is required")
	}
	if _, err := ParseRatingLevel(string(v.Quality)); err != nil {
		return fmt.Errorf("vendor quality: %w", err)
	}
	if _, err := ParseRatingLevel(string(v.Reliability)); err != nil {
		return fmt.Errorf("vendor reliability: %w", err)
	}
	if _, err := ParsePriceTier(string(v.PriceTier)); err != nil {
		return fmt.Errorf("vendor price tier: %w", err)
	}
	return nil
}
