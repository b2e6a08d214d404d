// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"regexp"
	"strings"
)

// =============================================================================
// RULE-BASED FALLBACK
// =============================================================================

// greetingPattern detects common Portuguese greetings.
var greetingPattern = regexp.MustCompile(`\b(oi|olá|hey|ola|e ai)\b`)

// Canned fallback answers used when no provider is available. Deterministic
// on purpose: the widget must keep answering in degraded mode.
const (
	fallbackGreeting = "Olá! Sou o assistente do Lukas, desenvolvedor junior em evolução de Fortaleza-CE! " +
		"Posso falar sobre seus 13 repositórios, projetos com IA e tecnologias. O que você quer saber?"

	fallbackGitProjects = "O Git_Projects é um repositório de aprendizado onde o Lukas está desenvolvendo " +
		"algoritmos, interfaces gráficas e integrações. Inclui implementação de Fibonacci, GUI com Python " +
		"e integração com GitHub API. Quer que eu busque os detalhes reais do repositório?"

	fallbackChatbot = "O Lukas tem 2 chatbots: este que você está usando (profile-chat) com sistema híbrido " +
		"Chrome AI + Groq, e o semana-javascript-expert09 do desafio do Erick Wendel. Quer saber mais sobre algum?"

	fallbackDefault = "Sou o assistente do Lukas Gomes! Posso falar sobre seus projetos, tecnologias " +
		"(JavaScript, Python) e jornada como desenvolvedor. Mencione um projeto específico e eu busco " +
		"os dados reais do GitHub! O que você quer saber?"
)

// FallbackResponse returns a locally generated, rule-based answer for the
// given user text. Used when every provider failed initialization or a
// provider failed mid-conversation.
func FallbackResponse(text string) string {
	lower := strings.ToLower(text)

	if greetingPattern.MatchString(lower) {
		return fallbackGreeting
	}

	if strings.Contains(lower, "git_projects") || strings.Contains(lower, "git-projects") {
		return fallbackGitProjects
	}

	if strings.Contains(lower, "chatbot") || strings.Contains(lower, "bot") {
		return fallbackChatbot
	}

	return fallbackDefault
}
