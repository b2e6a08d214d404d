// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"strings"
	"testing"
)

func TestFallbackResponse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"greeting oi", "oi", "Olá! Sou o assistente do Lukas"},
		{"greeting hey", "hey, tudo bem?", "Olá! Sou o assistente do Lukas"},
		{"git projects underscore", "me fala do git_projects", "O Git_Projects é um repositório de aprendizado"},
		{"git projects hyphen", "o que é git-projects", "O Git_Projects é um repositório de aprendizado"},
		{"chatbot", "como esse chatbot funciona?", "O Lukas tem 2 chatbots"},
		{"bot", "você é um bot?", "O Lukas tem 2 chatbots"},
		{"default", "qual a stack favorita dele?", "Sou o assistente do Lukas Gomes!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FallbackResponse(tc.text)
			if !strings.HasPrefix(got, tc.want) {
				t.Errorf("FallbackResponse(%q) = %q, want prefix %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestFallbackResponse_Deterministic(t *testing.T) {
	first := FallbackResponse("oi")
	second := FallbackResponse("oi")
	if first != second {
		t.Error("fallback responses differ between calls")
	}
}
