// Package llm issues completion requests for purchase verdicts and runs the
// acceptance chain over the replies: emptiness, parseability, template-leak
// detection, and the importance policy.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Client defines the interface for completion providers. Complete returns
// the raw content of the first choice's message.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config holds configuration for the completion client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewClient creates a completion client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	}
	return nil, fmt.Errorf("unsupported completion provider: %s", cfg.Provider)
}

// cleanMarkdownWrapper strips a ```json ... ``` fence that some models wrap
// around their reply despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
