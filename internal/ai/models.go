package ai

// Message is a single role-tagged entry in a chat transcript.
type Message struct {
	// Role is one of "system", "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// Health reports which wire protocols the configured endpoint answers on.
// Both flags false means the model is unreachable.
type Health struct {
	OpenAICompat bool   `json:"openai_v1"`
	OllamaNative bool   `json:"ollama_native"`
	Base         string `json:"base"`
	Model        string `json:"model"`
}
