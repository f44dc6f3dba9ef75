package llm

import (
	"fmt"
	"strings"
)

// templateMarkers are fragments of the prompt templates that must never
// appear in generated free-text fields. A match means the model echoed
// instruction text back instead of writing prose.
var templateMarkers = []string{
	"VENDOR RUBRIC",
	"SCORING LENSES",
	"INVARIANT RULES",
	"USER CONTEXT",
	"IMPORTANT PURCHASE POLICY",
	"OUTPUT FORMAT",
	"Respond with ONLY",
	"You are a purchase decision advisor",
	"{{",
	"}}",
}

// LeakChecker scans free-text fields for leaked prompt-template fragments.
// The deny list is fixed; substring match, no regular expressions.
type LeakChecker struct {
	markers []string
}

// NewLeakChecker creates a checker over the fixed template marker list.
func NewLeakChecker() *LeakChecker {
	return &LeakChecker{markers: templateMarkers}
}

// Check returns an error naming the first leaked marker found in any of the
// given fields. Empty fields are skipped.
func (c *LeakChecker) Check(fields map[string]string) error {
	for name, text := range fields {
		if text == "" {
			continue
		}
		for _, marker := range c.markers {
			if strings.Contains(text, marker) {
				return fmt.Errorf("template leak in %s: contains marker %q", name, marker)
			}
		}
	}
	return nil
}
