package cli

import (
	"fmt"
	"strings"

	"github.com/hindsight-cli/hindsight/internal/model"
)

// outcomeStyles maps each verdict to its display style.
func outcomeStyle(outcome model.Outcome) func(...string) string {
	switch outcome {
	case model.OutcomeBuy:
		return BuyStyle.Render
	case model.OutcomeSkip:
		return SkipStyle.Render
	default:
		return HoldStyle.Render
	}
}

// RenderResult formats a full evaluation for the terminal.
func RenderResult(result *model.EvaluationResult) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(result.Candidate.Title))
	b.WriteString("\n")

	verdict := outcomeStyle(result.Outcome)(strings.ToUpper(string(result.Outcome)))
	fmt.Fprintf(&b, "Verdict: %s  (confidence %.0f%%)\n", verdict, result.Confidence*100)

	if result.Degraded {
		b.WriteString(SubtleStyle.Render("Scored with rule-based fallback; verdict service was unavailable.") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render("Signal") + "  " + TableHeaderStyle.Render("Score") + "\n")
	for _, ns := range result.Reasoning.Signals.All() {
		fmt.Fprintf(&b, "%s %.2f  %s\n",
			TableCellStyle.Render(fmt.Sprintf("%-20s", ns.Name)),
			ns.Signal.Score,
			SubtleStyle.Render(ns.Signal.Explanation))
	}

	b.WriteString("\n")
	b.WriteString(result.Reasoning.Rationale)
	b.WriteString("\n")

	if result.Reasoning.AlternativeSolution != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Alternative: %s\n", result.Reasoning.AlternativeSolution)
	}

	return BoxStyle.Render(b.String())
}

// RenderVendorTable formats the vendor reference table.
func RenderVendorTable(vendors []model.VendorMatch) string {
	if len(vendors) == 0 {
		return SubtleStyle.Render("No vendors on record.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", TableHeaderStyle.Render(fmt.Sprintf("%-24s %-16s %-8s %-12s %-8s",
		"Name", "Category", "Quality", "Reliability", "Tier")))
	for _, v := range vendors {
		category := string(v.Category)
		if category == "" {
			category = "(any)"
		}
		fmt.Fprintf(&b, "%-24s %-16s %-8s %-12s %-8s\n",
			v.Name, category, v.Quality, v.Reliability, v.PriceTier)
	}
	return b.String()
}
