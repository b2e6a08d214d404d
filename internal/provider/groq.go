// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/lukasdevjobs1/profile-chat/internal/model"
)

// =============================================================================
// REMOTE (GROQ) ADAPTER
// =============================================================================

// GroqConfig holds configuration for the remote completion adapter.
type GroqConfig struct {
	// ProxyURL is the completion endpoint, normally the CORS proxy that
	// holds the real API credential server-side.
	ProxyURL string

	// Model is the model identifier sent with every request.
	Model string

	// Temperature and MaxTokens are passed through to the completion API.
	Temperature float64
	MaxTokens   int

	// Timeout for completion requests (default: 30s).
	Timeout time.Duration
}

// DefaultGroqConfig returns the default remote adapter configuration.
func DefaultGroqConfig() *GroqConfig {
	return &GroqConfig{
		ProxyURL:    "https://profile-chat.vercel.app/api/chat",
		Model:       "llama-3.1-8b-instant",
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     30 * time.Second,
	}
}

// completionRequest is the OpenAI-compatible request body the proxy
// forwards unchanged.
type completionRequest struct {
	Model       string       `json:"model"`
	Messages    []model.Turn `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

// completionResponse is the subset of the completion payload the adapter
// reads. Error bodies are not parsed beyond the status code.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Groq is the remote adapter: it calls an HTTP completion endpoint through
// the proxy. The backend has no incremental streaming; the full answer
// arrives at once and is paced downstream.
//
// Groq supports arbitrary concurrent sessions, so Initialize only validates
// configuration and stores the system prompt.
type Groq struct {
	mu           sync.Mutex
	config       *GroqConfig
	httpClient   *http.Client
	systemPrompt string
	initialized  bool
}

// NewGroq creates the remote adapter with the given configuration.
func NewGroq(config *GroqConfig) *Groq {
	if config == nil {
		config = DefaultGroqConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Groq{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name implements Provider.
func (g *Groq) Name() string {
	return "groq"
}

// Initialize implements Provider. Safe to call again after a failure.
func (g *Groq) Initialize(ctx context.Context, systemPrompt string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.config.ProxyURL == "" {
		return &ProviderError{Type: ErrTypeUnavailable, Message: "groq: no completion endpoint configured"}
	}
	if g.config.Model == "" {
		return &ProviderError{Type: ErrTypeUnavailable, Message: "groq: no model configured"}
	}

	g.systemPrompt = systemPrompt
	g.initialized = true
	return nil
}

// Respond implements Provider.
func (g *Groq) Respond(ctx context.Context, req Request) (string, error) {
	g.mu.Lock()
	initialized := g.initialized
	config := g.config
	g.mu.Unlock()

	if !initialized {
		return "", ErrProviderUnavailable
	}
	if ctx.Err() != nil {
		return "", ErrCancelled
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		g.mu.Lock()
		systemPrompt = g.systemPrompt
		g.mu.Unlock()
	}

	messages := make([]model.Turn, 0, len(req.History)+2)
	messages = append(messages, model.Turn{Role: model.RoleSystem, Content: systemPrompt})
	messages = append(messages, req.History...)
	messages = append(messages, model.Turn{Role: model.RoleUser, Content: req.UserText})

	body, err := json.Marshal(completionRequest{
		Model:       config.Model,
		Messages:    messages,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
	})
	if err != nil {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "groq: failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, config.ProxyURL, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "groq: failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", ErrCancelled
		}
		return "", &ProviderError{Type: ErrTypeTransport, Message: "groq: request failed", Cause: err}
	}
	defer resp.Body.Close()

	// A missing server-side credential surfaces as a 5xx from the proxy;
	// any non-2xx is a transport failure either way.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{
			Type:    ErrTypeTransport,
			Message: "groq: completion request failed: " + resp.Status,
		}
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "groq: failed to decode response", Cause: err}
	}
	if len(result.Choices) == 0 {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "groq: empty completion response"}
	}

	return result.Choices[0].Message.Content, nil
}
