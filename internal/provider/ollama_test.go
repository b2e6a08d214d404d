// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaFactoryServerDown(t *testing.T) {
	factory := NewOllamaFactory(OllamaConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := factory(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !IsUnavailable(err) {
		t.Errorf("error not classified unavailable: %v", err)
	}
}

func TestOllamaSessionPrompt(t *testing.T) {
	var gotReq ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "resposta local"},
			Done:    true,
		})
	}))
	defer server.Close()

	factory := NewOllamaFactory(OllamaConfig{BaseURL: server.URL, Model: "llama3.2"})
	session, err := factory(context.Background(), "prompt de sistema")
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}

	answer, err := session.Prompt(context.Background(), "oi")
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if answer != "resposta local" {
		t.Errorf("answer = %q", answer)
	}

	if gotReq.Stream {
		t.Error("request asked for streaming")
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "prompt de sistema" {
		t.Errorf("system message = %+v", gotReq.Messages[0])
	}
	if gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "oi" {
		t.Errorf("user message = %+v", gotReq.Messages[1])
	}
}

func TestOllamaSessionErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	factory := NewOllamaFactory(OllamaConfig{BaseURL: server.URL})
	session, err := factory(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}

	if _, err := session.Prompt(context.Background(), "oi"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestOllamaThroughNativeProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "ok"},
			Done:    true,
		})
	}))
	defer server.Close()

	native := NewNative(NewOllamaFactory(OllamaConfig{BaseURL: server.URL}))
	if err := native.Initialize(context.Background(), "prompt"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	answer, err := native.Respond(context.Background(), Request{UserText: "oi"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if answer != "ok" {
		t.Errorf("answer = %q", answer)
	}
}
