package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hindsight-cli/hindsight/internal/common"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// mockClient returns scripted replies in order, repeating the last one.
type mockClient struct {
	replies []string
	err     error
	calls   int
}

func (m *mockClient) Complete(_ context.Context, _, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	i := m.calls - 1
	if i >= len(m.replies) {
		i = len(m.replies) - 1
	}
	return m.replies[i], nil
}

func floatPtr(v float64) *float64 { return &v }

// validReply builds a well-formed verdict JSON body.
func validReply(verdict string, confidence float64, rationale string) string {
	body := map[string]any{
		"verdict":              verdict,
		"confidence":           confidence,
		"alternative_solution": "Borrow one first.",
		"rationale":            rationale,
	}
	for _, name := range []string{
		"value_conflict", "pattern_repetition", "emotional_impulse", "financial_strain",
		"long_term_utility", "emotional_support", "short_term_regret", "long_term_regret",
	} {
		body[name] = map[string]any{"score": 0.3, "explanation": "Nothing alarming in the history."}
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func basicRequest() Request {
	return Request{
		Candidate: model.CandidatePurchase{
			Title:         "Espresso machine",
			Category:      model.CategoryHome,
			Justification: "morning coffee is a daily ritual",
			Price:         floatPtr(320),
		},
		Algorithm: model.AlgorithmStandard,
	}
}

func TestScoreAcceptsValidReply(t *testing.T) {
	client := &mockClient{replies: []string{validReply("hold", 0.7, "A solid machine, but the budget is tight this month.")}}
	scorer := NewScorer(client, nil)

	verdict, err := scorer.Score(context.Background(), basicRequest())
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeHold, verdict.Outcome)
	assert.Equal(t, 0.7, verdict.Confidence)
	assert.Equal(t, 1, client.calls)
}

func TestScoreStripsMarkdownFences(t *testing.T) {
	reply := "```json\n" + validReply("buy", 0.9, "Clearly useful.") + "\n```"
	scorer := NewScorer(&mockClient{replies: []string{reply}}, nil)

	verdict, err := scorer.Score(context.Background(), basicRequest())
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeBuy, verdict.Outcome)
}

func TestScoreRetriesThenAccepts(t *testing.T) {
	client := &mockClient{replies: []string{
		"not json at all",
		validReply("skip", 0.8, "Price is out of proportion."),
	}}
	scorer := NewScorer(client, nil)

	verdict, err := scorer.Score(context.Background(), basicRequest())
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeSkip, verdict.Outcome)
	assert.Equal(t, 2, client.calls)
}

func TestScoreExhaustsRetryCap(t *testing.T) {
	client := &mockClient{replies: []string{"still not json"}}
	scorer := NewScorer(client, nil)

	_, err := scorer.Score(context.Background(), basicRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrVerdictUnavailable)
	assert.Equal(t, 2, client.calls)
}

func TestScoreRegenerationUsesReducedCap(t *testing.T) {
	client := &mockClient{replies: []string{"still not json"}}
	scorer := NewScorer(client, nil)

	req := basicRequest()
	req.Regeneration = true

	_, err := scorer.Score(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestScoreTransportErrorsAreRetried(t *testing.T) {
	client := &mockClient{err: errors.New("connection reset")}
	scorer := NewScorer(client, nil)

	_, err := scorer.Score(context.Background(), basicRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrVerdictUnavailable)
	assert.Equal(t, 2, client.calls)
}

func TestScoreRejectsEmptyBody(t *testing.T) {
	client := &mockClient{replies: []string{"```json\n\n```"}}
	scorer := NewScorer(client, nil)

	_, err := scorer.Score(context.Background(), basicRequest())
	require.Error(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestScoreClampsScores(t *testing.T) {
	body := map[string]any{
		"verdict":    "buy",
		"confidence": 1.8,
		"rationale":  "Fine.",
	}
	for _, name := range []string{
		"value_conflict", "pattern_repetition", "emotional_impulse", "financial_strain",
		"long_term_utility", "emotional_support", "short_term_regret", "long_term_regret",
	} {
		body[name] = map[string]any{"score": -0.4, "explanation": "ok"}
	}
	raw, _ := json.Marshal(body)
	scorer := NewScorer(&mockClient{replies: []string{string(raw)}}, nil)

	verdict, err := scorer.Score(context.Background(), basicRequest())
	require.NoError(t, err)
	assert.Equal(t, 1.0, verdict.Confidence)
	for _, ns := range verdict.Signals.All() {
		assert.Equal(t, 0.0, ns.Signal.Score, ns.Name)
	}
}

func TestScoreRejectsUnknownVerdict(t *testing.T) {
	scorer := NewScorer(&mockClient{replies: []string{validReply("maybe", 0.5, "Unsure.")}}, nil)

	_, err := scorer.Score(context.Background(), basicRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrVerdictUnavailable)
}

func TestLeakCheckerPerMarker(t *testing.T) {
	checker := NewLeakChecker()

	for _, marker := range templateMarkers {
		t.Run(marker, func(t *testing.T) {
			err := checker.Check(map[string]string{
				"rationale": fmt.Sprintf("Some text %s more text", marker),
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "rationale")
		})
	}

	assert.NoError(t, checker.Check(map[string]string{
		"rationale": "A plain, leak-free rationale about coffee.",
		"empty":     "",
	}))
}

func TestScoreRejectsLeakedExplanation(t *testing.T) {
	reply := validReply("buy", 0.6, "Fine purchase.")
	leaked := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(reply), &leaked))
	leaked["financial_strain"] = map[string]any{"score": 0.2, "explanation": "Per the VENDOR RUBRIC above..."}
	raw, _ := json.Marshal(leaked)

	scorer := NewScorer(&mockClient{replies: []string{string(raw)}}, nil)
	_, err := scorer.Score(context.Background(), basicRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrVerdictUnavailable)
}
