package model

import "strings"

// OnboardingAnswer is one raw Likert answer from the onboarding quiz.
type OnboardingAnswer struct {
	QuestionKey string
	Value       int // 1..Scale
	Scale       int // 4 or 5 depending on the instrument
}

// UserProfile is the stored profile/budget/onboarding read for one user.
type UserProfile struct {
	UserID              string
	Goals               string
	MonthlyBudget       float64
	DiscretionaryBudget float64
	Answers             []OnboardingAnswer
}

// UserPsychProfile holds the normalized [0,1] projections of the raw quiz
// answers. It is derived fresh on each evaluation, never stored.
type UserPsychProfile struct {
	StressSensitivity float64
	Materialism       float64
	LocusOfControl    float64
}

// Answer key prefixes for the three psychometric composites.
const (
	answerKeyStress      = "stress"
	answerKeyMaterialism = "materialism"
	answerKeyLocus       = "locus"
)

// DerivePsychProfile projects raw 1-5/1-4 Likert answers onto [0,1]
// composites. Questions with an unknown prefix are ignored; an empty or
// malformed composite stays at the 0.5 neutral midpoint.
func DerivePsychProfile(answers []OnboardingAnswer) UserPsychProfile {
	var stress, materialism, locus likertMean
	for _, a := range answers {
		v, ok := a.normalized()
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(a.QuestionKey, answerKeyStress):
			stress.add(v)
		case strings.HasPrefix(a.QuestionKey, answerKeyMaterialism):
			materialism.add(v)
		case strings.HasPrefix(a.QuestionKey, answerKeyLocus):
			locus.add(v)
		}
	}
	return UserPsychProfile{
		StressSensitivity: stress.value(),
		Materialism:       materialism.value(),
		LocusOfControl:    locus.value(),
	}
}

// normalized maps a raw Likert value onto [0,1], rejecting out-of-range input.
func (a OnboardingAnswer) normalized() (float64, bool) {
	if a.Scale < 2 || a.Value < 1 || a.Value > a.Scale {
		return 0, false
	}
	return float64(a.Value-1) / float64(a.Scale-1), true
}

type likertMean struct {
	sum float64
	n   int
}

func (m *likertMean) add(v float64) {
	m.sum += v
	m.n++
}

func (m *likertMean) value() float64 {
	if m.n == 0 {
		return 0.5
	}
	return Clamp01(m.sum / float64(m.n))
}
