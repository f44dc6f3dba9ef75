package model

import "time"

// HistoryWindow selects which slice of purchase history a query covers.
type HistoryWindow string

// History windows. "Recent" is a regret-risk signal, "long-term" a
// satisfaction signal; the two are never mixed in one query.
const (
	WindowRecent   HistoryWindow = "recent"    // rated within the last 30 days
	WindowLongTerm HistoryWindow = "long-term" // rated 180+ days ago
)

// Window bounds and fixed query limits.
const (
	RecentWindowDays   = 30
	LongTermWindowDays = 180
	RatedQueryLimit    = 10
	SimilarPoolLimit   = 50
	SimilarResultLimit = 5
	SwipeQueryLimit    = 20
)

// PastPurchase is a historical purchase joined with its swipe outcome and
// linked verdict justification.
type PastPurchase struct {
	RatedAt       time.Time
	Title         string
	Category      Category
	Vendor        string
	Justification string
	Outcome       SwipeOutcome
	Price         float64
	Embedding     []float32 // pre-computed, may be nil
}

// EmbeddingText builds the similarity-ranking text for a past purchase.
func (p *PastPurchase) EmbeddingText() string {
	return JoinEmbeddingText(p.Title, string(p.Category), p.Vendor, p.Justification)
}

// SwipeOutcome is the user's retrospective rating of a past purchase.
type SwipeOutcome string

// Swipe outcomes.
const (
	SwipeRegret    SwipeOutcome = "regret"
	SwipeUncertain SwipeOutcome = "uncertain"
	SwipeSatisfied SwipeOutcome = "satisfied"
)

// RepetitionValue maps a swipe outcome onto the fixed pattern-repetition
// scale: regret 0, uncertain 0.5, satisfied 1.
func (s SwipeOutcome) RepetitionValue() (float64, bool) {
	switch s {
	case SwipeRegret:
		return 0, true
	case SwipeUncertain:
		return 0.5, true
	case SwipeSatisfied:
		return 1, true
	}
	return 0, false
}
