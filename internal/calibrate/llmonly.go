package calibrate

import (
	"github.com/hindsight-cli/hindsight/internal/llm"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// LLMOnly passes the completion verdict through verbatim. When there is no
// verdict, because the engine fell back to rule-based signals, it delegates
// to the weighted fallback so the caller still gets a decision.
type LLMOnly struct {
	Fallback Strategy
}

func (l *LLMOnly) Decide(signals model.SignalSet, verdict *llm.Verdict) Decision {
	if verdict == nil {
		return l.Fallback.Decide(signals, nil)
	}
	return Decision{
		Outcome:    verdict.Outcome,
		Confidence: model.Clamp01(verdict.Confidence),
	}
}
