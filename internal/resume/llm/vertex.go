package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/pamten/resume-backend/pkg/config"
)

// VertexGenerator calls Gemini through Vertex AI using application default
// credentials.
type VertexGenerator struct {
	client *genai.Client
	cfg    config.LLMConfig
}

func NewVertexGenerator(ctx context.Context, cfg config.LLMConfig) (*VertexGenerator, error) {
	if cfg.Project == "" {
		return nil, errors.New("vertex: project is required")
	}
	location := cfg.Location
	if location == "" {
		location = "us-central1"
	}

	client, err := genai.NewClient(ctx, cfg.Project, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexGenerator{client: client, cfg: cfg}, nil
}

func (v *VertexGenerator) model(mimeType string) *genai.GenerativeModel {
	model := v.client.GenerativeModel(v.cfg.ModelName())
	model.SetTemperature(v.cfg.Temperature)
	if v.cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(v.cfg.MaxTokens))
	}
	model.ResponseMIMEType = mimeType
	return model
}

func (v *VertexGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model("text/plain").GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("vertex: generate content: %w", err)
	}
	return vertexText(resp)
}

func (v *VertexGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model("application/json").GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("vertex: generate content: %w", err)
	}
	text, err := vertexText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (v *VertexGenerator) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

func vertexText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("vertex: no response candidates returned")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", errors.New("vertex: no content in response")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("vertex: no text parts in response")
	}
	return b.String(), nil
}
