// Package gather assembles the point-in-time context bundle an evaluation
// reads: profile, bounded history windows, a vendor match, and the category
// pattern-repetition signal. All reads happen concurrently and none of them
// can abort an evaluation.
package gather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hindsight-cli/hindsight/internal/model"
	"github.com/hindsight-cli/hindsight/internal/service"
)

// Bundle is the aggregated context handed to the prompt builder and the
// heuristic fallback scorer.
type Bundle struct {
	ProfileSummary    string
	RecentRated       string
	RecentSimilar     string
	LongTermRated     string
	LongTermSimilar   string
	Vendor            *model.VendorMatch
	PatternRepetition model.ScoreExplanation
	Psych             model.UserPsychProfile
}

// Aggregator performs the concurrent context reads for one evaluation.
type Aggregator struct {
	store    service.ContextStore
	embedder service.Embedder // nil disables semantic similarity ranking
	logger   *slog.Logger
}

// New creates an aggregator. embedder may be nil; similarity ranking then
// falls back to exact category match.
func New(store service.ContextStore, embedder service.Embedder, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{store: store, embedder: embedder, logger: logger}
}

// Gather runs the profile, vendor, history and pattern-repetition reads
// concurrently and joins them into a Bundle. Optional signals that fail to
// load degrade to "no data" text instead of failing the evaluation.
func (a *Aggregator) Gather(ctx context.Context, userID string, candidate model.CandidatePurchase) (*Bundle, error) {
	bundle := &Bundle{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bundle.ProfileSummary, bundle.Psych = a.loadProfile(gctx, userID)
		return nil
	})

	g.Go(func() error {
		bundle.Vendor = a.lookupVendor(gctx, candidate)
		return nil
	})

	g.Go(func() error {
		bundle.RecentRated = a.loadRated(gctx, userID, model.WindowRecent)
		return nil
	})

	g.Go(func() error {
		bundle.LongTermRated = a.loadRated(gctx, userID, model.WindowLongTerm)
		return nil
	})

	g.Go(func() error {
		bundle.RecentSimilar = a.loadSimilar(gctx, userID, model.WindowRecent, candidate)
		return nil
	})

	g.Go(func() error {
		bundle.LongTermSimilar = a.loadSimilar(gctx, userID, model.WindowLongTerm, candidate)
		return nil
	})

	g.Go(func() error {
		bundle.PatternRepetition = a.patternRepetition(gctx, userID, candidate.Category)
		return nil
	})

	// The goroutines above never return errors; Wait only surfaces context
	// cancellation from the caller.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return bundle, nil
}

// loadProfile reads the user profile and derives the psych composites. A
// read failure is treated as "no data".
func (a *Aggregator) loadProfile(ctx context.Context, userID string) (string, model.UserPsychProfile) {
	profile, err := a.store.GetUserProfile(ctx, userID)
	if err != nil || profile == nil {
		if err != nil {
			a.logger.Warn("profile read failed, continuing without it", "user_id", userID, "error", err)
		}
		return "No profile on record.", model.DerivePsychProfile(nil)
	}

	psych := model.DerivePsychProfile(profile.Answers)

	var b strings.Builder
	fmt.Fprintf(&b, "Monthly budget: $%.2f, discretionary: $%.2f.\n", profile.MonthlyBudget, profile.DiscretionaryBudget)
	if strings.TrimSpace(profile.Goals) != "" {
		fmt.Fprintf(&b, "Stated goals: %s\n", strings.TrimSpace(profile.Goals))
	}
	fmt.Fprintf(&b, "Stress sensitivity %.2f, materialism %.2f, locus of control %.2f (all 0-1).",
		psych.StressSensitivity, psych.Materialism, psych.LocusOfControl)

	return b.String(), psych
}

// lookupVendor resolves the candidate's vendor against the reference store.
// Precedence lives in the store: category-scoped match, then unscoped, then
// substring. No match is not an error.
func (a *Aggregator) lookupVendor(ctx context.Context, candidate model.CandidatePurchase) *model.VendorMatch {
	name := strings.TrimSpace(candidate.Vendor)
	if name == "" {
		return nil
	}

	vendor, err := a.store.FindVendor(ctx, name, candidate.Category)
	if err != nil {
		a.logger.Debug("vendor lookup found nothing", "vendor", name, "error", err)
		return nil
	}
	return vendor
}

// loadRated formats the rated purchases of one window into a text block.
func (a *Aggregator) loadRated(ctx context.Context, userID string, window model.HistoryWindow) string {
	purchases, err := a.store.GetRatedPurchases(ctx, userID, window, model.RatedQueryLimit)
	if err != nil {
		a.logger.Warn("history read failed, continuing without it",
			"user_id", userID, "window", window, "error", err)
		return noHistoryText(window)
	}
	return formatPurchases(purchases, window)
}

// loadSimilar ranks the window's similarity pool against the candidate and
// formats the top matches.
func (a *Aggregator) loadSimilar(ctx context.Context, userID string, window model.HistoryWindow, candidate model.CandidatePurchase) string {
	pool, err := a.store.GetSimilarityPool(ctx, userID, window, model.SimilarPoolLimit)
	if err != nil {
		a.logger.Warn("similarity pool read failed, continuing without it",
			"user_id", userID, "window", window, "error", err)
		return noHistoryText(window)
	}

	ranked := a.rankSimilar(ctx, candidate, pool)
	if len(ranked) > model.SimilarResultLimit {
		ranked = ranked[:model.SimilarResultLimit]
	}
	return formatPurchases(ranked, window)
}

// patternRepetition computes the mean of the fixed outcome mapping over up
// to 20 same-category swipes, defaulting to 0 with an explicit explanation
// when there is no data.
func (a *Aggregator) patternRepetition(ctx context.Context, userID string, category model.Category) model.ScoreExplanation {
	if category == "" {
		return model.ScoreExplanation{
			Score:       0,
			Explanation: "No category supplied; no pattern history to compare against.",
		}
	}

	outcomes, err := a.store.GetSwipeOutcomes(ctx, userID, category, model.SwipeQueryLimit)
	if err != nil {
		a.logger.Warn("swipe outcome read failed, treating as no data",
			"user_id", userID, "category", category, "error", err)
		outcomes = nil
	}

	var sum float64
	var n int
	for _, o := range outcomes {
		if v, ok := o.RepetitionValue(); ok {
			sum += v
			n++
		}
	}

	if n == 0 {
		return model.ScoreExplanation{
			Score:       0,
			Explanation: fmt.Sprintf("No rated purchases in %s yet; no repetition signal.", category),
		}
	}

	mean := sum / float64(n)
	return model.ScoreExplanation{
		Score: mean,
		Explanation: fmt.Sprintf("Across %d rated %s purchases the satisfaction mean is %.2f (0 = regretted, 1 = satisfied).",
			n, category, mean),
	}.Clamped()
}

func noHistoryText(window model.HistoryWindow) string {
	if window == model.WindowRecent {
		return "No purchases rated in the last 30 days."
	}
	return "No purchases rated 6+ months ago."
}

// formatPurchases renders purchases as one line each for prompt embedding.
func formatPurchases(purchases []model.PastPurchase, window model.HistoryWindow) string {
	if len(purchases) == 0 {
		return noHistoryText(window)
	}

	var b strings.Builder
	for i, p := range purchases {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s ($%.2f, %s", p.Title, p.Price, p.Category)
		if p.Vendor != "" {
			fmt.Fprintf(&b, ", %s", p.Vendor)
		}
		fmt.Fprintf(&b, ") rated %q on %s", p.Outcome, p.RatedAt.Format("2006-01-02"))
		if strings.TrimSpace(p.Justification) != "" {
			fmt.Fprintf(&b, "; reason at the time: %s", strings.TrimSpace(p.Justification))
		}
	}
	return b.String()
}
