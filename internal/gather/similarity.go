package gather

import (
	"context"
	"math"
	"sort"

	"github.com/hindsight-cli/hindsight/internal/model"
)

// rankSimilar orders pool purchases by how similar they are to the
// candidate. With an embedder available it ranks by cosine similarity
// between the candidate embedding and each item's pre-computed embedding;
// without one it falls back to exact category match, most recent first.
func (a *Aggregator) rankSimilar(ctx context.Context, candidate model.CandidatePurchase, pool []model.PastPurchase) []model.PastPurchase {
	if len(pool) == 0 {
		return nil
	}

	if a.embedder == nil {
		return filterByCategory(candidate.Category, pool)
	}

	vectors, err := a.embedder.EmbedTexts(ctx, []string{candidate.EmbeddingText()})
	if err != nil || len(vectors) != 1 {
		a.logger.Warn("candidate embedding failed, falling back to category match", "error", err)
		return filterByCategory(candidate.Category, pool)
	}
	query := vectors[0]

	type scored struct {
		purchase model.PastPurchase
		score    float64
	}

	ranked := make([]scored, 0, len(pool))
	for _, p := range pool {
		if len(p.Embedding) == 0 {
			continue
		}
		ranked = append(ranked, scored{purchase: p, score: cosineSimilarity(query, p.Embedding)})
	}

	if len(ranked) == 0 {
		return filterByCategory(candidate.Category, pool)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]model.PastPurchase, len(ranked))
	for i, s := range ranked {
		out[i] = s.purchase
	}
	return out
}

// filterByCategory keeps only exact category matches, preserving the pool's
// recency ordering.
func filterByCategory(category model.Category, pool []model.PastPurchase) []model.PastPurchase {
	if category == "" {
		return nil
	}
	var out []model.PastPurchase
	for _, p := range pool {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
