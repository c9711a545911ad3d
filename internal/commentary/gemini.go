package commentary

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiClient struct {
	apiKey      string
	model       string
	temperature float32
}

// NewGeminiClient creates a TextClient backed by the Gemini API.
func NewGeminiClient(apiKey, model string, temperature float32) TextClient {
	return &geminiClient{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
	}
}

func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}
