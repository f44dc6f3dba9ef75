package llm

import (
	"fmt"
	"strings"

	"github.com/hindsight-cli/hindsight/internal/model"
)

// Marker phrases for the importance policy and the essential-purchase
// override. Each list is fixed and unit-tested per marker.
var (
	// importanceMarkers: the rationale must name the purchase as important.
	importanceMarkers = []string{"important"}

	// toleranceMarkers: the rationale must state that the high price or
	// tier is tolerated.
	toleranceMarkers = []string{
		"price is justified",
		"cost is justified",
		"price is acceptable",
		"price is tolerated",
		"worth the price",
		"worth the cost",
		"premium is acceptable",
		"premium is warranted",
	}

	// priceNegativeMarkers: phrases that frame price as the primary
	// negative. If one appears, the rationale must be backed by
	// affordability-strain or low-long-term-utility evidence.
	priceNegativeMarkers = []string{
		"too expensive",
		"cannot afford",
		"can't afford",
		"overpriced",
		"main concern is the price",
		"primary concern is the price",
		"biggest issue is the price",
	}

	// essentialMarkers: justification text that marks a purchase as
	// essential for the override rule.
	essentialMarkers = []string{
		"for work",
		"essential",
		"required for",
		"need it for",
	}
)

// Evidence thresholds for a price-negative framing: financial strain at or
// above strainEvidenceMin, or long-term utility below utilityEvidenceMax.
const (
	strainEvidenceMin  = 0.6
	utilityEvidenceMax = 0.4
)

// Essential override bounds: utility floor and the price used when no
// vendor tier is known.
const (
	overrideUtilityMin = 0.65
	overridePriceMin   = 150.0
)

// financingSuggestion is appended to the rationale when the override fires.
const financingSuggestion = " This purchase is flagged as important and essential; rather than skipping it, consider a financing or installment plan to spread the cost."

// checkImportancePolicy verifies the rationale of an importance-flagged
// purchase: it must (i) explicitly name the purchase as important, (ii)
// explicitly state that the high price or tier is tolerated, and (iii) if it
// nonetheless frames price as the primary negative, be backed by
// affordability-strain or low-long-term-utility evidence in the sub-scores.
func checkImportancePolicy(v *Verdict) error {
	rationale := strings.ToLower(v.Rationale)

	if !containsAny(rationale, importanceMarkers) {
		return fmt.Errorf("importance policy: rationale does not acknowledge the purchase as important")
	}
	if !containsAny(rationale, toleranceMarkers) {
		return fmt.Errorf("importance policy: rationale does not state that the price/tier is tolerated")
	}
	if containsAny(rationale, priceNegativeMarkers) {
		strain := v.Signals.FinancialStrain.Score
		utility := v.Signals.LongTermUtility.Score
		if strain < strainEvidenceMin && utility >= utilityEvidenceMax {
			return fmt.Errorf("importance policy: price framed as primary negative without strain or utility evidence (strain %.2f, utility %.2f)",
				strain, utility)
		}
	}
	return nil
}

// applyEssentialOverride remaps a "skip" verdict to "buy" for an
// importance-flagged, textually essential purchase with strong long-term
// utility at a premium-or-above price point. Returns true when it fired;
// the caller must not retry in that case.
func applyEssentialOverride(v *Verdict, candidate model.CandidatePurchase, vendor *model.VendorMatch) bool {
	if v.Outcome != model.OutcomeSkip || !candidate.Important {
		return false
	}
	if !containsAny(strings.ToLower(candidate.Justification), essentialMarkers) {
		return false
	}
	if v.Signals.LongTermUtility.Score < overrideUtilityMin {
		return false
	}
	if !priceAtOrAboveThreshold(candidate, vendor) {
		return false
	}

	v.Outcome = model.OutcomeBuy
	v.Rationale += financingSuggestion
	v.Overridden = true
	return true
}

// priceAtOrAboveThreshold holds when the matched vendor sits at premium or
// above, or, with no vendor match, when the price clears the fixed floor.
func priceAtOrAboveThreshold(candidate model.CandidatePurchase, vendor *model.VendorMatch) bool {
	if vendor != nil {
		return vendor.PriceTier.AtLeast(model.TierPremium)
	}
	return candidate.Price != nil && *candidate.Price >= overridePriceMin
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
