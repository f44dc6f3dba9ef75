// Package rubric maps ordinal vendor ratings onto the numeric anchors and
// descriptions the scoring paths share. Pure lookup tables, no state.
package rubric

import "github.com/hindsight-cli/hindsight/internal/model"

// RatingAnchor is the numeric anchor and description for a quality or
// reliability rating.
type RatingAnchor struct {
	Description string
	Value       float64
}

// TierProfile describes a price tier: the typical price multiplier band
// relative to the category median, and the risk points the heuristic
// fallback scorer adds for it.
type TierProfile struct {
	Description    string
	MultiplierLow  float64
	MultiplierHigh float64
	RiskPoints     int
}

var ratingAnchors = map[model.RatingLevel]RatingAnchor{
	model.RatingLow: {
		Value:       0.4,
		Description: "below-average track record; expect shorter product life and patchier support",
	},
	model.RatingMedium: {
		Value:       0.6,
		Description: "solid mainstream track record; no notable red flags",
	},
	model.RatingHigh: {
		Value:       0.8,
		Description: "consistently strong track record; products tend to hold up well",
	},
}

var tierProfiles = map[model.PriceTier]TierProfile{
	model.TierBudget: {
		MultiplierLow:  0.5,
		MultiplierHigh: 0.9,
		RiskPoints:     0,
		Description:    "prices typically 0.5-0.9x the category median",
	},
	model.TierMid: {
		MultiplierLow:  0.9,
		MultiplierHigh: 1.3,
		RiskPoints:     4,
		Description:    "prices typically 0.9-1.3x the category median",
	},
	model.TierPremium: {
		MultiplierLow:  1.3,
		MultiplierHigh: 2.0,
		RiskPoints:     8,
		Description:    "prices typically 1.3-2x the category median",
	},
	model.TierLuxury: {
		MultiplierLow:  2.0,
		MultiplierHigh: 5.0,
		RiskPoints:     12,
		Description:    "prices typically 2-5x the category median",
	},
}

// Rating resolves a quality or reliability rating to its anchor. Returns
// nil when the rating is not one of the known ordinals.
func Rating(level model.RatingLevel) *RatingAnchor {
	if a, ok := ratingAnchors[level]; ok {
		return &a
	}
	return nil
}

// Tier resolves a price tier to its profile. Returns nil on no match.
func Tier(tier model.PriceTier) *TierProfile {
	if p, ok := tierProfiles[tier]; ok {
		return &p
	}
	return nil
}

// TierRiskPoints returns the risk points the heuristic fallback scorer adds
// for a vendor's price tier, zero when the tier is unknown.
func TierRiskPoints(tier model.PriceTier) int {
	if p := Tier(tier); p != nil {
		return p.RiskPoints
	}
	return 0
}
