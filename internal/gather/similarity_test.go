package gather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hindsight-cli/hindsight/internal/model"
)

func poolOf(purchases ...model.PastPurchase) []model.PastPurchase { return purchases }

func TestRankSimilarWithoutEmbedderFiltersByCategory(t *testing.T) {
	a := New(&mockStore{}, nil, nil)

	pool := poolOf(
		model.PastPurchase{Title: "Tent", Category: model.CategorySports},
		model.PastPurchase{Title: "Novel", Category: model.CategoryBooks},
		model.PastPurchase{Title: "Bike pump", Category: model.CategorySports},
	)

	got := a.rankSimilar(context.Background(), testCandidate(), pool)
	require.Len(t, got, 2)
	assert.Equal(t, "Tent", got[0].Title)
	assert.Equal(t, "Bike pump", got[1].Title)
}

func TestRankSimilarOrdersByCosine(t *testing.T) {
	a := New(&mockStore{}, &mockEmbedder{vector: []float32{1, 0}}, nil)

	pool := poolOf(
		model.PastPurchase{Title: "Opposite", Category: model.CategoryBooks, Embedding: []float32{-1, 0}},
		model.PastPurchase{Title: "Aligned", Category: model.CategoryBooks, Embedding: []float32{1, 0}},
		model.PastPurchase{Title: "Orthogonal", Category: model.CategoryBooks, Embedding: []float32{0, 1}},
	)

	got := a.rankSimilar(context.Background(), testCandidate(), pool)
	require.Len(t, got, 3)
	assert.Equal(t, "Aligned", got[0].Title)
	assert.Equal(t, "Orthogonal", got[1].Title)
	assert.Equal(t, "Opposite", got[2].Title)
}

func TestRankSimilarFallsBackOnEmbedError(t *testing.T) {
	a := New(&mockStore{}, &mockEmbedder{err: errors.New("rate limited")}, nil)

	pool := poolOf(
		model.PastPurchase{Title: "Tent", Category: model.CategorySports, Embedding: []float32{1}},
		model.PastPurchase{Title: "Novel", Category: model.CategoryBooks, Embedding: []float32{1}},
	)

	got := a.rankSimilar(context.Background(), testCandidate(), pool)
	require.Len(t, got, 1)
	assert.Equal(t, "Tent", got[0].Title)
}

func TestRankSimilarFallsBackWhenPoolHasNoEmbeddings(t *testing.T) {
	a := New(&mockStore{}, &mockEmbedder{vector: []float32{1, 0}}, nil)

	pool := poolOf(
		model.PastPurchase{Title: "Tent", Category: model.CategorySports},
	)

	got := a.rankSimilar(context.Background(), testCandidate(), pool)
	require.Len(t, got, 1)
	assert.Equal(t, "Tent", got[0].Title)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// degenerate inputs
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}), "length mismatch")
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}), "zero vector")
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil), "empty")
}
