package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pamten/resume-backend/pkg/config"
)

const jsonOnlyInstruction = "Respond with a single valid JSON object and nothing else."

// AnthropicGenerator calls Claude through the Messages API
type AnthropicGenerator struct {
	client anthropic.Client
	cfg    config.LLMConfig
}

func NewAnthropicGenerator(cfg config.LLMConfig) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}

	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
	}, nil
}

func (a *AnthropicGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return a.send(ctx, prompt, nil)
}

func (a *AnthropicGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := a.send(ctx, prompt, []anthropic.TextBlockParam{{Text: jsonOnlyInstruction}})
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (a *AnthropicGenerator) send(ctx context.Context, prompt string, system []anthropic.TextBlockParam) (string, error) {
	maxTokens := int64(a.cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.cfg.ModelName()),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(float64(a.cfg.Temperature)),
		System:      system,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("anthropic: no text content in response")
	}
	return b.String(), nil
}

func (a *AnthropicGenerator) Close() error { return nil }
