// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lukasdevjobs1/profile-chat/internal/model"
)

func newGroqServer(t *testing.T, status int, answer string) (*httptest.Server, *completionRequest) {
	t.Helper()

	var lastRequest completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&lastRequest); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "upstream"}`))
			return
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "` + answer + `"}}]}`))
	}))
	t.Cleanup(server.Close)
	return server, &lastRequest
}

func newGroqProvider(url string) *Groq {
	return NewGroq(&GroqConfig{
		ProxyURL:    url,
		Model:       "llama-3.1-8b-instant",
		Temperature: 0.7,
		MaxTokens:   1000,
	})
}

func TestGroq_Respond(t *testing.T) {
	server, lastRequest := newGroqServer(t, http.StatusOK, "Oi! Tudo bem?")
	groq := newGroqProvider(server.URL)

	if err := groq.Initialize(context.Background(), "base prompt"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	answer, err := groq.Respond(context.Background(), Request{
		SystemPrompt: "enriched prompt",
		UserText:     "oi",
		History: []model.Turn{
			{Role: model.RoleUser, Content: "pergunta anterior"},
			{Role: model.RoleAssistant, Content: "resposta anterior"},
		},
	})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if answer != "Oi! Tudo bem?" {
		t.Errorf("answer = %q", answer)
	}

	// Wire shape: system + history + user, in that order.
	if lastRequest.Model != "llama-3.1-8b-instant" {
		t.Errorf("model = %q", lastRequest.Model)
	}
	if lastRequest.Temperature != 0.7 || lastRequest.MaxTokens != 1000 {
		t.Errorf("sampling params = %v/%v", lastRequest.Temperature, lastRequest.MaxTokens)
	}
	if len(lastRequest.Messages) != 4 {
		t.Fatalf("message count = %d, want 4", len(lastRequest.Messages))
	}
	if lastRequest.Messages[0].Role != model.RoleSystem || lastRequest.Messages[0].Content != "enriched prompt" {
		t.Errorf("system message = %+v", lastRequest.Messages[0])
	}
	if lastRequest.Messages[3].Role != model.RoleUser || lastRequest.Messages[3].Content != "oi" {
		t.Errorf("user message = %+v", lastRequest.Messages[3])
	}
}

func TestGroq_RespondBeforeInitialize(t *testing.T) {
	groq := newGroqProvider("http://localhost:0")

	_, err := groq.Respond(context.Background(), Request{UserText: "oi"})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestGroq_NonOKStatusIsTransportError(t *testing.T) {
	// Includes the proxy's missing-credential 5xx.
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusUnauthorized} {
		server, _ := newGroqServer(t, status, "")
		groq := newGroqProvider(server.URL)
		if err := groq.Initialize(context.Background(), "prompt"); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		_, err := groq.Respond(context.Background(), Request{UserText: "oi"})
		if !IsTransport(err) {
			t.Errorf("status %d: err = %v, want transport error", status, err)
		}
	}
}

func TestGroq_CancelledBeforeRequest(t *testing.T) {
	server, _ := newGroqServer(t, http.StatusOK, "nunca")
	groq := newGroqProvider(server.URL)
	if err := groq.Initialize(context.Background(), "prompt"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := groq.Respond(ctx, Request{UserText: "oi"})
	if !IsCancelled(err) {
		t.Errorf("err = %v, want cancelled", err)
	}
}

func TestGroq_InitializeValidatesConfig(t *testing.T) {
	groq := NewGroq(&GroqConfig{Model: "llama-3.1-8b-instant"})
	if err := groq.Initialize(context.Background(), "prompt"); !IsUnavailable(err) {
		t.Errorf("err = %v, want unavailable for missing endpoint", err)
	}

	// Idempotent-safe: a later call with fixed config succeeds.
	groq.config.ProxyURL = "https://example.test/api/chat"
	if err := groq.Initialize(context.Background(), "prompt"); err != nil {
		t.Errorf("Initialize after fix failed: %v", err)
	}
}
