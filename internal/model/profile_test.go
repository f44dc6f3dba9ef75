package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePsychProfile(t *testing.T) {
	t.Run("normalizes across scales", func(t *testing.T) {
		answers := []OnboardingAnswer{
			{QuestionKey: "stress_spending", Value: 5, Scale: 5},
			{QuestionKey: "stress_pressure", Value: 1, Scale: 5},
			{QuestionKey: "materialism_status", Value: 4, Scale: 4},
			{QuestionKey: "locus_control", Value: 3, Scale: 5},
		}
		p := DerivePsychProfile(answers)

		assert.InDelta(t, 0.5, p.StressSensitivity, 1e-9)
		assert.InDelta(t, 1.0, p.Materialism, 1e-9)
		assert.InDelta(t, 0.5, p.LocusOfControl, 1e-9)
	})

	t.Run("empty composites stay neutral", func(t *testing.T) {
		p := DerivePsychProfile(nil)
		assert.Equal(t, 0.5, p.StressSensitivity)
		assert.Equal(t, 0.5, p.Materialism)
		assert.Equal(t, 0.5, p.LocusOfControl)
	})

	t.Run("ignores malformed and unknown answers", func(t *testing.T) {
		answers := []OnboardingAnswer{
			{QuestionKey: "stress_spending", Value: 7, Scale: 5}, // out of range
			{QuestionKey: "favorite_color", Value: 3, Scale: 5},  // unknown prefix
			{QuestionKey: "stress_sleep", Value: 5, Scale: 5},
		}
		p := DerivePsychProfile(answers)
		assert.InDelta(t, 1.0, p.StressSensitivity, 1e-9)
	})
}
