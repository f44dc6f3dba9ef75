package calibrate

import (
	"math"
	"sort"

	"github.com/hindsight-cli/hindsight/internal/llm"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// Calibrated-probability thresholds. The skip threshold sits closer to the
// middle than standard's because an unnecessary purchase costs more than a
// deferred one.
const (
	costSensitiveBuyBelow = 0.35
	costSensitiveSkipFrom = 0.65

	costSensitiveHoldHalfWidth = 0.15
	costSensitiveConfBase      = 0.5
	costSensitiveConfSpan      = 0.30
	costSensitiveConfCeiling   = 0.95
)

// calibrationAnchor maps a raw logistic probability to a calibrated one.
type calibrationAnchor struct {
	raw        float64
	calibrated float64
}

// calibrationAnchors were fit offline against rated-purchase outcomes. The
// table is strictly increasing in both columns and pins the endpoints, so
// interpolation preserves ordering and never leaves [0,1].
var calibrationAnchors = []calibrationAnchor{
	{0.00, 0.00},
	{0.05, 0.02},
	{0.10, 0.05},
	{0.20, 0.12},
	{0.30, 0.22},
	{0.35, 0.30},
	{0.40, 0.38},
	{0.50, 0.52},
	{0.60, 0.66},
	{0.65, 0.72},
	{0.70, 0.78},
	{0.80, 0.88},
	{0.90, 0.95},
	{1.00, 1.00},
}

// CostSensitive runs a logistic model over the signals, recalibrates the
// probability through the anchor table, and applies asymmetric thresholds.
type CostSensitive struct {
	Weights Weights
}

func (c *CostSensitive) Decide(signals model.SignalSet, _ *llm.Verdict) Decision {
	w := c.Weights
	logit := w.LogisticIntercept +
		w.LogisticValueConflict*signals.ValueConflict.Score +
		w.LogisticPatternRepeat*signals.PatternRepetition.Score +
		w.LogisticEmotionalImpulse*signals.EmotionalImpulse.Score +
		w.LogisticFinancialStrain*signals.FinancialStrain.Score +
		w.LogisticLongTermUtility*signals.LongTermUtility.Score +
		w.LogisticEmotionalSupport*signals.EmotionalSupport.Score

	p := recalibrate(sigmoid(logit))

	outcome := model.OutcomeHold
	switch {
	case p < costSensitiveBuyBelow:
		outcome = model.OutcomeBuy
	case p >= costSensitiveSkipFrom:
		outcome = model.OutcomeSkip
	}

	return Decision{Outcome: outcome, Confidence: confidenceFor(p, outcome)}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// recalibrate linearly interpolates between the two surrounding anchors.
func recalibrate(raw float64) float64 {
	raw = model.Clamp01(raw)
	i := sort.Search(len(calibrationAnchors), func(i int) bool {
		return calibrationAnchors[i].raw >= raw
	})
	if i == 0 {
		return calibrationAnchors[0].calibrated
	}
	lo, hi := calibrationAnchors[i-1], calibrationAnchors[i]
	if hi.raw == lo.raw {
		return hi.calibrated
	}
	t := (raw - lo.raw) / (hi.raw - lo.raw)
	return lo.calibrated + t*(hi.calibrated-lo.calibrated)
}

// confidenceFor scales with distance from the nearer threshold. Inside the
// hold band the distance is measured to whichever boundary is closer.
func confidenceFor(p float64, outcome model.Outcome) float64 {
	var distance float64
	switch outcome {
	case model.OutcomeBuy:
		distance = costSensitiveBuyBelow - p
	case model.OutcomeSkip:
		distance = p - costSensitiveSkipFrom
	default:
		distance = math.Min(p-costSensitiveBuyBelow, costSensitiveSkipFrom-p)
	}
	if distance < 0 {
		distance = 0
	}
	conf := costSensitiveConfBase + distance/costSensitiveHoldHalfWidth*costSensitiveConfSpan
	return math.Min(conf, costSensitiveConfCeiling)
}
