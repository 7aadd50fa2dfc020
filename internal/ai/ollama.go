package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaClient talks to a local or remote chat-completion endpoint that may
// speak either of two wire protocols at the same base address:
//
//  1. OpenAI-compatible servers (LM Studio, vLLM, TGI) -> POST /v1/chat/completions
//  2. Ollama native API                                -> POST /api/chat
//
// Chat tries the OpenAI-compatible shape first and transparently falls back
// to the native shape when the route is refused or unsupported.
type OllamaClient struct {
	base       string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewOllamaClient creates a client for the given base URL (e.g.
// http://localhost:11434) and model name. apiKey may be empty for local
// endpoints.
func NewOllamaClient(base, model, apiKey string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		base:   strings.TrimRight(base, "/"),
		model:  model,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type nativeRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  struct {
		Temperature float64 `json:"temperature"`
	} `json:"options"`
}

type nativeResponse struct {
	Message Message `json:"message"`
}

// errRouteUnsupported marks an OpenAI-path failure that should trigger the
// native fallback (the server exists but does not serve /v1).
type errRouteUnsupported struct {
	status int
}

func (e *errRouteUnsupported) Error() string {
	return fmt.Sprintf("openai route unsupported (status %d)", e.status)
}

// Chat sends the transcript and returns the assistant's reply. The OpenAI
// path is attempted first; connection errors and 400/404 responses fall back
// to the Ollama native path. If both paths fail the combined failure is
// returned.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	content, openAIErr := c.tryOpenAI(ctx, messages, temperature)
	if openAIErr == nil {
		return content, nil
	}

	content, nativeErr := c.tryNative(ctx, messages, temperature)
	if nativeErr == nil {
		return content, nil
	}

	return "", fmt.Errorf("model unreachable: openai path: %v; native path: %w", openAIErr, nativeErr)
}

func (c *OllamaClient) tryOpenAI(ctx context.Context, messages []Message, temperature float64) (string, error) {
	payload := openAIRequest{Model: c.model, Messages: messages, Temperature: temperature}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// A live server without a /v1 route answers 400 or 404.
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return "", &errRouteUnsupported{status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, string(b))
	}

	var parsed openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no completion choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *OllamaClient) tryNative(ctx context.Context, messages []Message, temperature float64) (string, error) {
	payload := nativeRequest{Model: c.model, Messages: messages, Stream: false}
	payload.Options.Temperature = temperature
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, string(b))
	}

	var parsed nativeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return parsed.Message.Content, nil
}

// Healthcheck probes both protocol shapes independently with short timeouts
// and never returns an error; unreachable paths simply report false. Used
// for diagnostics only, not in the generation path.
func (c *OllamaClient) Healthcheck(ctx context.Context) Health {
	h := Health{Base: c.base, Model: c.model}

	probe := &http.Client{Timeout: 3 * time.Second}

	body, _ := json.Marshal(openAIRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/chat/completions", bytes.NewReader(body)); err == nil {
		req.Header.Set("Content-Type", "application/json")
		if resp, err := probe.Do(req); err == nil {
			// Any HTTP answer counts as reachable for the probe.
			resp.Body.Close()
			h.OpenAICompat = true
		}
	}

	if req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/tags", nil); err == nil {
		if resp, err := probe.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				h.OllamaNative = true
			}
			resp.Body.Close()
		}
	}

	return h
}
