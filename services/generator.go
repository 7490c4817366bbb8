package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"codebot-backend/apperrors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const generatorSystemPrompt = "You are an experienced programmer. " +
	"Generate working, commented code for the task the user describes. " +
	"Reply with the code first, keep explanations short."

// Generator produces code from a free-text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator generates code with the Gemini API.
type GeminiGenerator struct {
	model *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", apperrors.ErrProvider, err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(1500)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(generatorSystemPrompt)},
	}
	return &GeminiGenerator{model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", apperrors.ErrProvider, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: gemini returned no candidates", apperrors.ErrProvider)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: gemini returned empty response", apperrors.ErrProvider)
	}
	return sb.String(), nil
}

// StubGenerator is the fallback when no API key is configured. Requests
// still succeed (and consume quota) so the rest of the flow can be
// exercised without credentials.
type StubGenerator struct{}

func (StubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return fmt.Sprintf("```python\n# Code for: %s\ndef example():\n    return 'Result'\n```", prompt), nil
}

// NewGenerator picks the Gemini generator when an API key is present
// and degrades to the stub otherwise.
func NewGenerator(ctx context.Context, apiKey string) Generator {
	if apiKey == "" {
		return StubGenerator{}
	}
	gen, err := NewGeminiGenerator(ctx, apiKey)
	if err != nil {
		log.Printf("WARN: [Generator] Gemini client init failed, using stub: %v", err)
		return StubGenerator{}
	}
	return gen
}
