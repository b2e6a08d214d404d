// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package proxy implements the credential-holding forwarder that sits
// between chat clients and the completion API. Clients never see the API
// key; the proxy injects it server-side.
package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultUpstream is the completion API endpoint.
const DefaultUpstream = "https://api.groq.com/openai/v1/chat/completions"

// Config holds the forwarder settings.
type Config struct {
	// Upstream completion API URL.
	Upstream string

	// APIKey injected as the Bearer credential. Empty means requests fail
	// with a configuration error rather than an upstream rejection.
	APIKey string

	// Timeout for upstream calls.
	Timeout time.Duration
}

// Handler forwards chat completion requests upstream with the server-held
// credential attached.
type Handler struct {
	cfg        Config
	httpClient *http.Client
}

// NewHandler creates the forwarder.
func NewHandler(cfg Config) *Handler {
	if cfg.Upstream == "" {
		cfg.Upstream = DefaultUpstream
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Handler{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ServeHTTP implements http.Handler. Browser-facing, so every response
// carries permissive CORS headers and preflights short-circuit.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		writeJSON(w, http.StatusOK, map[string]string{"message": "CORS OK"})
		return
	case http.MethodPost:
		// fall through to forwarding
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	if h.cfg.APIKey == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "API key not configured"})
		return
	}

	h.forward(w, r)
}

// forward relays the request body upstream and the upstream response back,
// preserving the upstream status code so clients can classify failures.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
		return
	}

	upReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.cfg.Upstream, bytes.NewReader(body))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build upstream request"})
		return
	}
	upReq.Header.Set("Authorization", "Bearer "+h.cfg.APIKey)
	upReq.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(upReq)
	if err != nil {
		log.Printf("PROXY: upstream call failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream request failed"})
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("PROXY: failed to relay upstream body: %v", err)
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	h.Set("Access-Control-Max-Age", "86400")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("PROXY: failed to encode response: %v", err)
	}
}
