package gather

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hindsight-cli/hindsight/internal/common"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// mockStore is a scriptable ContextStore.
type mockStore struct {
	profile    *model.UserProfile
	profileErr error
	rated      map[model.HistoryWindow][]model.PastPurchase
	ratedErr   error
	pool       map[model.HistoryWindow][]model.PastPurchase
	swipes     []model.SwipeOutcome
	swipesErr  error
	vendor     *model.VendorMatch
	vendorErr  error
}

func (m *mockStore) GetUserProfile(_ context.Context, _ string) (*model.UserProfile, error) {
	return m.profile, m.profileErr
}

func (m *mockStore) GetRatedPurchases(_ context.Context, _ string, window model.HistoryWindow, _ int) ([]model.PastPurchase, error) {
	if m.ratedErr != nil {
		return nil, m.ratedErr
	}
	return m.rated[window], nil
}

func (m *mockStore) GetSimilarityPool(_ context.Context, _ string, window model.HistoryWindow, _ int) ([]model.PastPurchase, error) {
	return m.pool[window], nil
}

func (m *mockStore) GetSwipeOutcomes(_ context.Context, _ string, _ model.Category, _ int) ([]model.SwipeOutcome, error) {
	return m.swipes, m.swipesErr
}

func (m *mockStore) FindVendor(_ context.Context, _ string, _ model.Category) (*model.VendorMatch, error) {
	if m.vendorErr != nil {
		return nil, m.vendorErr
	}
	return m.vendor, nil
}

// mockEmbedder returns a fixed vector per call.
type mockEmbedder struct {
	vector []float32
	err    error
}

func (m *mockEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vector
	}
	return out, nil
}

func testCandidate() model.CandidatePurchase {
	return model.CandidatePurchase{
		Title:         "Trail running shoes",
		Category:      model.CategorySports,
		Vendor:        "RunFar",
		Justification: "training for a fall race",
	}
}

func TestGatherFullBundle(t *testing.T) {
	store := &mockStore{
		profile: &model.UserProfile{
			UserID:              "u1",
			Goals:               "save for a house deposit",
			MonthlyBudget:       3000,
			DiscretionaryBudget: 400,
			Answers: []model.OnboardingAnswer{
				{QuestionKey: "stress_spending", Value: 5, Scale: 5},
			},
		},
		rated: map[model.HistoryWindow][]model.PastPurchase{
			model.WindowRecent: {{
				Title: "Running socks", Category: model.CategorySports,
				Price: 18, Outcome: model.SwipeSatisfied,
				RatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
		swipes: []model.SwipeOutcome{model.SwipeSatisfied, model.SwipeRegret},
		vendor: &model.VendorMatch{
			Name: "RunFar", Category: model.CategorySports,
			Quality: model.RatingHigh, Reliability: model.RatingHigh,
			PriceTier: model.TierMid,
		},
	}

	bundle, err := New(store, nil, nil).Gather(context.Background(), "u1", testCandidate())
	require.NoError(t, err)

	assert.Contains(t, bundle.ProfileSummary, "save for a house deposit")
	assert.Contains(t, bundle.ProfileSummary, "$3000.00")
	assert.InDelta(t, 1.0, bundle.Psych.StressSensitivity, 1e-9)

	assert.Contains(t, bundle.RecentRated, "Running socks")
	assert.Contains(t, bundle.RecentRated, `rated "satisfied"`)
	assert.Contains(t, bundle.LongTermRated, "No purchases rated 6+ months ago.")

	require.NotNil(t, bundle.Vendor)
	assert.Equal(t, "RunFar", bundle.Vendor.Name)

	// (1 + 0) / 2
	assert.InDelta(t, 0.5, bundle.PatternRepetition.Score, 1e-9)
}

func TestGatherDegradesOnReadFailures(t *testing.T) {
	store := &mockStore{
		profileErr: errors.New("db locked"),
		ratedErr:   errors.New("db locked"),
		swipesErr:  errors.New("db locked"),
		vendorErr:  common.ErrNotFound,
	}

	bundle, err := New(store, nil, nil).Gather(context.Background(), "u1", testCandidate())
	require.NoError(t, err)

	assert.Equal(t, "No profile on record.", bundle.ProfileSummary)
	assert.Equal(t, 0.5, bundle.Psych.Materialism)
	assert.Contains(t, bundle.RecentRated, "No purchases rated in the last 30 days.")
	assert.Nil(t, bundle.Vendor)
	assert.Equal(t, 0.0, bundle.PatternRepetition.Score)
	assert.Contains(t, bundle.PatternRepetition.Explanation, "No rated purchases")
}

func TestGatherRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&mockStore{}, nil, nil).Gather(ctx, "u1", testCandidate())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPatternRepetitionNoData(t *testing.T) {
	a := New(&mockStore{}, nil, nil)

	got := a.patternRepetition(context.Background(), "u1", model.CategoryBooks)
	assert.Equal(t, 0.0, got.Score)
	assert.True(t, strings.Contains(got.Explanation, "books"))
}

func TestPatternRepetitionMean(t *testing.T) {
	store := &mockStore{swipes: []model.SwipeOutcome{
		model.SwipeSatisfied,
		model.SwipeSatisfied,
		model.SwipeUncertain,
		model.SwipeRegret,
		model.SwipeOutcome("bogus"), // ignored
	}}
	a := New(store, nil, nil)

	got := a.patternRepetition(context.Background(), "u1", model.CategoryBooks)
	// (1 + 1 + 0.5 + 0) / 4
	assert.InDelta(t, 0.625, got.Score, 1e-9)
}
