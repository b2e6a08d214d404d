// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"context"
	"log"
	"strings"

	"github.com/lukasdevjobs1/profile-chat/internal/github"
)

// =============================================================================
// CONTEXT ENRICHMENT
// =============================================================================

// metadataSource is the subset of github.Cache the enricher depends on.
type metadataSource interface {
	GetOrFetch(ctx context.Context, key string) (*github.Repository, error)
	ListRepositories(ctx context.Context) ([]github.RepoSummary, error)
}

// Enricher augments the system prompt with live repository metadata when the
// user's message references a known project.
type Enricher struct {
	cache metadataSource
}

// NewEnricher creates an enricher backed by the given metadata cache.
func NewEnricher(cache metadataSource) *Enricher {
	return &Enricher{cache: cache}
}

// Enrich returns the system prompt for the given user text. When a project
// reference is detected and its metadata can be fetched, a formatted data
// block is appended; on any lookup failure the base prompt is returned
// unchanged. Enrichment never blocks the conversation.
func (e *Enricher) Enrich(ctx context.Context, basePrompt, userText string) string {
	identifier := Detect(userText)
	if identifier == "" {
		if DetectCatalog(userText) {
			return e.enrichCatalog(ctx, basePrompt)
		}
		return basePrompt
	}

	repo, err := e.cache.GetOrFetch(ctx, identifier)
	if err != nil {
		if github.IsNotFound(err) {
			log.Printf("ENRICH: repository %s not found", identifier)
		} else {
			log.Printf("ENRICH: lookup for %s failed: %v", identifier, err)
		}
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n### 📊 DADOS REAIS DO REPOSITÓRIO ")
	b.WriteString(strings.ToUpper(identifier))
	b.WriteString(" (GitHub API):\n")
	b.WriteString(github.FormatRepository(repo))
	return b.String()
}

// enrichCatalog appends the cached repository listing for questions about
// the portfolio as a whole. Same failure policy as single lookups.
func (e *Enricher) enrichCatalog(ctx context.Context, basePrompt string) string {
	repos, err := e.cache.ListRepositories(ctx)
	if err != nil {
		log.Printf("ENRICH: repository listing failed: %v", err)
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n### 📊 REPOSITÓRIOS REAIS DO GITHUB (mais recentes primeiro):\n")
	b.WriteString(github.FormatRepositoryList(repos))
	return b.String()
}
