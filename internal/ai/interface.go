package ai

import (
	"context"
)

// ChatClient defines the contract for sending a chat transcript to a
// language model and receiving the assistant's textual reply.
// This interface allows for swapping model backends (local Ollama,
// OpenAI-compatible servers, Gemini) without touching the planner.
type ChatClient interface {
	// Chat delivers the ordered transcript and returns the assistant's
	// response text. Temperature controls sampling randomness.
	Chat(ctx context.Context, messages []Message, temperature float64) (string, error)
}
