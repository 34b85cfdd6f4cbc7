// Package llm talks to the language model that structures resumes and writes
// elevator pitches.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pamten/resume-backend/pkg/config"
)

// Generator is an abstraction over LLM providers
type Generator interface {
	// GenerateText returns the model's free-form answer to prompt
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for a JSON document and returns it without markdown fences
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewGenerator creates the client for the configured provider.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGeminiGenerator(ctx, cfg)
	case config.ProviderVertex:
		return NewVertexGenerator(ctx, cfg)
	case config.ProviderAnthropic:
		return NewAnthropicGenerator(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// CleanJSONBlock removes markdown code fences around a JSON payload.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
