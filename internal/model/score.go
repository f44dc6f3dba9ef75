package model

// ScoreExplanation pairs a clamped [0,1] score with the text that justifies it.
type ScoreExplanation struct {
	Explanation string  `json:"explanation"`
	Score       float64 `json:"score"`
}

// Clamped returns a copy with the score forced into [0,1]. Every producer of
// a ScoreExplanation runs its output through this regardless of upstream
// arithmetic.
func (s ScoreExplanation) Clamped() ScoreExplanation {
	s.Score = Clamp01(s.Score)
	return s
}

// Clamp01 clamps v into the closed interval [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SignalSet holds the eight sub-signals every evaluation produces.
type SignalSet struct {
	ValueConflict     ScoreExplanation `json:"value_conflict"`
	PatternRepetition ScoreExplanation `json:"pattern_repetition"`
	EmotionalImpulse  ScoreExplanation `json:"emotional_impulse"`
	FinancialStrain   ScoreExplanation `json:"financial_strain"`
	LongTermUtility   ScoreExplanation `json:"long_term_utility"`
	EmotionalSupport  ScoreExplanation `json:"emotional_support"`
	ShortTermRegret   ScoreExplanation `json:"short_term_regret"`
	LongTermRegret    ScoreExplanation `json:"long_term_regret"`
}

// Clamp forces every score in the set into [0,1] in place.
func (s *SignalSet) Clamp() {
	s.ValueConflict = s.ValueConflict.Clamped()
	s.PatternRepetition = s.PatternRepetition.Clamped()
	s.EmotionalImpulse = s.EmotionalImpulse.Clamped()
	s.FinancialStrain = s.FinancialStrain.Clamped()
	s.LongTermUtility = s.LongTermUtility.Clamped()
	s.EmotionalSupport = s.EmotionalSupport.Clamped()
	s.ShortTermRegret = s.ShortTermRegret.Clamped()
	s.LongTermRegret = s.LongTermRegret.Clamped()
}

// All returns the signals in a stable order for iteration and display.
func (s *SignalSet) All() []NamedSignal {
	return []NamedSignal{
		{Name: "value_conflict", Signal: s.ValueConflict},
		{Name: "pattern_repetition", Signal: s.PatternRepetition},
		{Name: "emotional_impulse", Signal: s.EmotionalImpulse},
		{Name: "financial_strain", Signal: s.FinancialStrain},
		{Name: "long_term_utility", Signal: s.LongTermUtility},
		{Name: "emotional_support", Signal: s.EmotionalSupport},
		{Name: "short_term_regret", Signal: s.ShortTermRegret},
		{Name: "long_term_regret", Signal: s.LongTermRegret},
	}
}

// NamedSignal is a signal with its wire name, used for display and export.
type NamedSignal struct {
	Name   string
	Signal ScoreExplanation
}
