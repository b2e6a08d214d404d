// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// =============================================================================
// OLLAMA-BACKED LOCAL SESSIONS
// =============================================================================

// OllamaConfig holds the local model endpoint settings.
type OllamaConfig struct {
	// BaseURL of the Ollama-compatible server.
	BaseURL string

	// Model name to chat with.
	Model string

	// Timeout for chat requests.
	Timeout time.Duration
}

// DefaultOllamaConfig returns the standard local endpoint settings.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL: "http://localhost:11434",
		Model:   "llama3.2",
		Timeout: 60 * time.Second,
	}
}

// ollamaMessage is the wire format for chat messages.
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaChatRequest is the non-streaming chat request body.
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// ollamaChatResponse is the non-streaming chat response body.
type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// ollamaSession is a NativeSession backed by a local Ollama server. The
// system prompt is fixed at creation, matching local session semantics.
type ollamaSession struct {
	cfg          OllamaConfig
	systemPrompt string
	httpClient   *http.Client
}

// NewOllamaFactory returns a SessionFactory that creates sessions against a
// local Ollama server. Session creation probes the server first so an
// absent local model surfaces as capability-not-present during
// initialization rather than on first prompt.
func NewOllamaFactory(cfg OllamaConfig) SessionFactory {
	def := DefaultOllamaConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}

	return func(ctx context.Context, systemPrompt string) (NativeSession, error) {
		s := &ollamaSession{
			cfg:          cfg,
			systemPrompt: systemPrompt,
			httpClient:   &http.Client{Timeout: cfg.Timeout},
		}
		if err := s.checkRunning(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// checkRunning probes the server root endpoint.
func (s *ollamaSession) checkRunning(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, s.cfg.BaseURL, nil)
	if err != nil {
		return &ProviderError{Type: ErrTypeUnavailable, Message: "failed to create probe request", Cause: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &ProviderError{
			Type:    ErrTypeUnavailable,
			Message: "local model server not reachable at " + s.cfg.BaseURL,
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{
			Type:    ErrTypeUnavailable,
			Message: "unexpected status from local model server: " + resp.Status,
		}
	}
	return nil
}

// Prompt sends one chat turn and returns the response text.
func (s *ollamaSession) Prompt(ctx context.Context, text string) (string, error) {
	messages := []ollamaMessage{
		{Role: "system", Content: s.systemPrompt},
		{Role: "user", Content: text},
	}

	body, err := json.Marshal(ollamaChatRequest{
		Model:    s.cfg.Model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "failed to marshal chat request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "failed to create chat request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return "", ErrCancelled
		}
		return "", &ProviderError{Type: ErrTypeTransport, Message: "chat request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Type:    ErrTypeTransport,
			Message: fmt.Sprintf("chat request failed: %s", resp.Status),
		}
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "failed to decode chat response", Cause: err}
	}
	if result.Message.Content == "" {
		return "", &ProviderError{Type: ErrTypeTransport, Message: "empty response from local model"}
	}

	return result.Message.Content, nil
}
