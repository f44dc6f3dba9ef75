// Package prompt renders the fixed instruction set and request contract for
// the completion service. Pure string construction; no side effects.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/hindsight-cli/hindsight/internal/gather"
	"github.com/hindsight-cli/hindsight/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Prompts is the rendered system/user message pair.
type Prompts struct {
	System string
	User   string
}

// Builder renders evaluation prompts from embedded templates.
type Builder struct {
	system  *template.Template
	request *template.Template
}

// NewBuilder parses the embedded templates.
func NewBuilder() (*Builder, error) {
	funcMap := template.FuncMap{
		"formatPrice": formatPrice,
	}

	system, err := template.New("system_prompt.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/system_prompt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse system template: %w", err)
	}

	request, err := template.New("request_prompt.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/request_prompt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse request template: %w", err)
	}

	return &Builder{system: system, request: request}, nil
}

// requestData feeds the request template.
type requestData struct {
	Candidate model.CandidatePurchase
	Bundle    *gather.Bundle
}

// Build renders both prompts for a candidate and its context bundle. The
// output is deterministic for identical inputs.
func (b *Builder) Build(candidate model.CandidatePurchase, bundle *gather.Bundle) (Prompts, error) {
	var sysBuf bytes.Buffer
	if err := b.system.Execute(&sysBuf, nil); err != nil {
		return Prompts{}, fmt.Errorf("failed to execute system template: %w", err)
	}

	var reqBuf bytes.Buffer
	data := requestData{Candidate: candidate, Bundle: bundle}
	if err := b.request.Execute(&reqBuf, data); err != nil {
		return Prompts{}, fmt.Errorf("failed to execute request template: %w", err)
	}

	return Prompts{System: sysBuf.String(), User: reqBuf.String()}, nil
}

func formatPrice(p *float64) string {
	if p == nil {
		return "unknown"
	}
	return fmt.Sprintf("$%.2f", *p)
}
