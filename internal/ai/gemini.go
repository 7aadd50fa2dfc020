package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements ChatClient using Google's Gemini models. It is an
// alternative backend to the local OllamaClient, selected by configuration
// when an API key is present.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient initializes a new Gemini-backed chat client.
// apiKey should be provided from environment variables.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// The planner asks for strict JSON itineraries; force JSON responses.
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (c *GeminiClient) Close() {
	c.client.Close()
}

// Chat flattens the role-tagged transcript into a single prompt and returns
// the model's textual reply. Gemini has no exact system/user/assistant wire
// shape for multi-system transcripts, so roles are labelled inline.
func (c *GeminiClient) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	c.model.SetTemperature(float32(temperature))

	var prompt strings.Builder
	for _, m := range messages {
		switch m.Role {
		case "system":
			prompt.WriteString("Instructions: ")
		case "assistant":
			prompt.WriteString("Assistant: ")
		default:
			prompt.WriteString("User: ")
		}
		prompt.WriteString(m.Content)
		prompt.WriteString("\n\n")
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	return out.String(), nil
}
