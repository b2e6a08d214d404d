// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lukasdevjobs1/profile-chat/internal/util"
)

// readmeExcerptChars is how much of the stored readme the enrichment block
// actually shows.
const readmeExcerptChars = 500

// FormatRepository renders a repository snapshot as the markdown block that
// gets appended to the system prompt. The assistant answers in Portuguese,
// so the labels are too.
func FormatRepository(repo *Repository) string {
	if repo == nil {
		return "Projeto não encontrado."
	}

	origin := "(Original)"
	if repo.IsFork {
		origin = "(Fork)"
	}

	languages := languageList(repo)

	var b strings.Builder
	b.WriteString("**" + repo.Name + "** " + origin + "\n")
	b.WriteString("📝 " + repo.Description + "\n")
	b.WriteString("⭐ " + strconv.Itoa(repo.Stars) + " stars | 🍴 " + strconv.Itoa(repo.Forks) + " forks\n")
	b.WriteString("💻 Tecnologias: " + languages + "\n")
	b.WriteString("📅 Criado: " + repo.CreatedAt.Format("02/01/2006") +
		" | Atualizado: " + repo.UpdatedAt.Format("02/01/2006") + "\n")

	if repo.Homepage != "" {
		b.WriteString("🌐 Site: " + repo.Homepage + "\n")
	}
	if len(repo.Topics) > 0 {
		b.WriteString("🏷️ Tags: " + strings.Join(repo.Topics, ", ") + "\n")
	}

	b.WriteString("🔗 GitHub: " + repo.URL + "\n")

	if len(repo.Readme) > 100 {
		b.WriteString("\n📖 **Sobre o projeto:**\n")
		b.WriteString(util.TruncateRunesNoEllipsis(repo.Readme, readmeExcerptChars))
		b.WriteString("...\n")
	}

	return b.String()
}

// languageList joins the language breakdown keys, falling back to the
// primary language when the breakdown lookup failed.
func languageList(repo *Repository) string {
	if len(repo.Languages) > 0 {
		names := make([]string, 0, len(repo.Languages))
		for name := range repo.Languages {
			names = append(names, name)
		}
		// Largest share first so the dominant language leads the list.
		sort.Slice(names, func(i, j int) bool {
			if repo.Languages[names[i]] != repo.Languages[names[j]] {
				return repo.Languages[names[i]] > repo.Languages[names[j]]
			}
			return names[i] < names[j]
		})
		return strings.Join(names, ", ")
	}
	if repo.Language != "" {
		return repo.Language
	}
	return "Não especificado"
}

// FormatRepositoryList renders the repository listing as a markdown catalog
// block. Forks are skipped; the listing endpoint already orders by last
// update.
func FormatRepositoryList(repos []RepoSummary) string {
	var b strings.Builder
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		b.WriteString("- **" + repo.Name + "**")
		if repo.Language != "" {
			b.WriteString(" (" + repo.Language + ")")
		}
		if repo.Description != "" {
			b.WriteString(": " + util.TruncateWidth(repo.Description, 120))
		}
		if repo.Stars > 0 {
			b.WriteString(" | ⭐ " + strconv.Itoa(repo.Stars))
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "Nenhum repositório encontrado."
	}
	return b.String()
}
