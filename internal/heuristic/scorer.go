// Package heuristic is the fully deterministic, rule-based scorer the engine
// degrades to when the completion service is unavailable or keeps failing
// validation. No external calls, no state: identical inputs always produce
// identical output.
package heuristic

import (
	"fmt"
	"strings"

	"github.com/hindsight-cli/hindsight/internal/gather"
	"github.com/hindsight-cli/hindsight/internal/model"
	"github.com/hindsight-cli/hindsight/internal/rubric"
)

// Risk point contributions, accumulated on a 0-100 scale.
const (
	highPriceRisk      = 30 // price > 200
	midPriceRisk       = 15 // price > 100
	impulseProneRisk   = 20
	thinReasonRisk     = 25 // justification missing or under 20 chars
	wantNotNeedRisk    = 10
	urgencyKeywordRisk = 20

	highPriceFloor = 200.0
	midPriceFloor  = 100.0
	thinReasonLen  = 20
)

// Fixed fractions that derive sub-scores from the normalized risk.
const (
	valueConflictFraction    = 0.6
	emotionalImpulseFraction = 0.7
)

// defaultUtility is used when no vendor rubric anchor is available.
const defaultUtility = 0.5

// impulseProneCategories carry a fixed risk bump.
var impulseProneCategories = map[model.Category]bool{
	model.CategoryElectronics:   true,
	model.CategoryFashion:       true,
	model.CategoryBeauty:        true,
	model.CategoryToys:          true,
	model.CategoryEntertainment: true,
	model.CategoryHobbies:       true,
}

// urgencyKeywords flag scarcity/urgency framing in the title.
var urgencyKeywords = []string{
	"limited",
	"sale",
	"deal",
	"exclusive",
	"last chance",
	"flash",
	"clearance",
	"hurry",
	"ends today",
	"while stocks last",
}

// Result is the heuristic scorer's output: the signal set plus the fallback
// narrative.
type Result struct {
	Signals             model.SignalSet
	Rationale           string
	AlternativeSolution string
}

// Score computes the deterministic signal set for a candidate and its
// context bundle.
func Score(candidate model.CandidatePurchase, bundle *gather.Bundle) Result {
	risk, reasons := riskPoints(candidate, bundle.Vendor)
	normalized := model.Clamp01(float64(risk) / 100.0)

	signals := model.SignalSet{
		ValueConflict: model.ScoreExplanation{
			Score:       valueConflictFraction * normalized,
			Explanation: fmt.Sprintf("Derived from rule-based risk %d/100: %s.", risk, strings.Join(reasons, "; ")),
		},
		PatternRepetition: bundle.PatternRepetition,
		EmotionalImpulse: model.ScoreExplanation{
			Score:       emotionalImpulseFraction * normalized,
			Explanation: fmt.Sprintf("Derived from rule-based risk %d/100; impulse framing weighs heaviest.", risk),
		},
		FinancialStrain: model.ScoreExplanation{
			Score:       0,
			Explanation: "No affordability signal without the completion service.",
		},
		LongTermUtility:  utilitySignal(bundle.Vendor),
		EmotionalSupport: model.ScoreExplanation{Score: 0, Explanation: "No emotional-support signal without the completion service."},
		ShortTermRegret:  model.ScoreExplanation{Score: 0, Explanation: "No short-term regret estimate without the completion service."},
		LongTermRegret:   model.ScoreExplanation{Score: 0, Explanation: "No long-term regret estimate without the completion service."},
	}
	signals.Clamp()

	return Result{
		Signals:             signals,
		Rationale:           narrative(candidate, bundle, risk),
		AlternativeSolution: "",
	}
}

// riskPoints accumulates the independent rule contributions and the reasons
// that fired, in a fixed order.
func riskPoints(candidate model.CandidatePurchase, vendor *model.VendorMatch) (int, []string) {
	risk := 0
	var reasons []string

	if candidate.Price != nil {
		switch {
		case *candidate.Price > highPriceFloor:
			risk += highPriceRisk
			reasons = append(reasons, fmt.Sprintf("price over $%.0f", highPriceFloor))
		case *candidate.Price > midPriceFloor:
			risk += midPriceRisk
			reasons = append(reasons, fmt.Sprintf("price over $%.0f", midPriceFloor))
		}
	}

	if impulseProneCategories[candidate.Category] {
		risk += impulseProneRisk
		reasons = append(reasons, fmt.Sprintf("%s is an impulse-prone category", candidate.Category))
	}

	justification := strings.TrimSpace(candidate.Justification)
	if len(justification) < thinReasonLen {
		risk += thinReasonRisk
		reasons = append(reasons, "justification missing or very short")
	}
	lower := strings.ToLower(justification)
	if strings.Contains(lower, "want") && !strings.Contains(lower, "need") {
		risk += wantNotNeedRisk
		reasons = append(reasons, "framed as a want, not a need")
	}

	title := strings.ToLower(candidate.Title)
	for _, kw := range urgencyKeywords {
		if strings.Contains(title, kw) {
			risk += urgencyKeywordRisk
			reasons = append(reasons, fmt.Sprintf("urgency keyword %q in title", kw))
			break
		}
	}

	if vendor != nil {
		if pts := rubric.TierRiskPoints(vendor.PriceTier); pts > 0 {
			risk += pts
			reasons = append(reasons, fmt.Sprintf("%s price tier", vendor.PriceTier))
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "no risk rules fired")
	}
	return risk, reasons
}

// utilitySignal derives long-term utility from the vendor quality anchor
// when a vendor matched, else a fixed neutral default.
func utilitySignal(vendor *model.VendorMatch) model.ScoreExplanation {
	if vendor != nil {
		if anchor := rubric.Rating(vendor.Quality); anchor != nil {
			return model.ScoreExplanation{
				Score:       anchor.Value,
				Explanation: fmt.Sprintf("Anchored on %s's %s quality rating: %s.", vendor.Name, vendor.Quality, anchor.Description),
			}
		}
	}
	return model.ScoreExplanation{
		Score:       defaultUtility,
		Explanation: "No vendor rubric available; neutral utility assumed.",
	}
}

// narrative assembles the fallback rationale from whichever context
// summaries are non-empty.
func narrative(candidate model.CandidatePurchase, bundle *gather.Bundle, risk int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rule-based assessment of %q (risk %d/100), produced without the completion service.", candidate.Title, risk)

	for _, block := range []struct {
		label string
		text  string
	}{
		{"Profile", bundle.ProfileSummary},
		{"Recent history", bundle.RecentRated},
		{"Long-term history", bundle.LongTermRated},
	} {
		if strings.TrimSpace(block.text) != "" {
			fmt.Fprintf(&b, " %s: %s", block.label, strings.TrimSpace(block.text))
		}
	}
	return b.String()
}
