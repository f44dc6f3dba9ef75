package calibrate

// Weights holds the versioned coefficients for the weighted algorithms.
// Bundling them in one struct keeps a calibration run reproducible: an
// evaluation records which version produced it.
type Weights struct {
	Version string

	// Standard additive weighting.
	StandardIntercept        float64
	StandardValueConflict    float64
	StandardPatternRepeat    float64
	StandardEmotionalImpulse float64
	StandardFinancialStrain  float64
	StandardLongTermUtility  float64
	StandardEmotionalSupport float64

	// Cost-sensitive logistic coefficients. Protective signals carry
	// negative coefficients directly.
	LogisticIntercept        float64
	LogisticValueConflict    float64
	LogisticPatternRepeat    float64
	LogisticEmotionalImpulse float64
	LogisticFinancialStrain  float64
	LogisticLongTermUtility  float64
	LogisticEmotionalSupport float64
}

// DefaultWeights returns the current production coefficients.
func DefaultWeights() Weights {
	return Weights{
		Version: "2025-06",

		StandardIntercept:        0.08,
		StandardValueConflict:    0.22,
		StandardPatternRepeat:    0.18,
		StandardEmotionalImpulse: 0.24,
		StandardFinancialStrain:  0.30,
		StandardLongTermUtility:  0.18,
		StandardEmotionalSupport: 0.10,

		LogisticIntercept:        -1.1,
		LogisticValueConflict:    1.4,
		LogisticPatternRepeat:    1.1,
		LogisticEmotionalImpulse: 1.5,
		LogisticFinancialStrain:  1.9,
		LogisticLongTermUtility:  -1.3,
		LogisticEmotionalSupport: -0.8,
	}
}
