// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt provides project-reference detection and system prompt
// enrichment for the chat assistant.
package prompt

import (
	"regexp"
	"strings"
)

// =============================================================================
// PROJECT DETECTION
// =============================================================================

// knownProjects is the curated list of repository identifiers scanned for in
// user text, including naming variants. Exact substring matches take
// priority over the looser patterns below.
var knownProjects = []string{
	"bia",
	"lukasdevjobs1",
	"git_projects",
	"git-projects",
	"exercicios_praticos_infinityschool",
	"exercicios-praticos-infinityschool",
	"profile-chat",
	"profile_chat",
	"semana-javascript-expert09",
	"desafios_infinity_school",
	"desafios-infinity-school",
	"grokking_algorithms",
	"grokking-algorithms",
	"mcp",
	"developer-roadmap",
	"developer_roadmap",
	"bibliotecadev",
	"agents-prompts",
	"agents_prompts",
}

// canonicalNames collapses underscore/hyphen/case variants to the exact
// repository names on GitHub.
var canonicalNames = map[string]string{
	"git_projects":                       "Git_Projects",
	"git-projects":                       "Git_Projects",
	"exercicios_praticos_infinityschool": "Exercicios_praticos_InfinitySchool",
	"exercicios-praticos-infinityschool": "Exercicios_praticos_InfinitySchool",
	"profile_chat":                       "profile-chat",
	"desafios_infinity_school":           "Desafios_Infinity_School",
	"desafios-infinity-school":           "Desafios_Infinity_School",
	"grokking_algorithms":                "grokking_algorithms",
	"grokking-algorithms":                "grokking_algorithms",
	"developer_roadmap":                  "developer-roadmap",
	"agents_prompts":                     "Agents-Prompts",
	"agents-prompts":                     "Agents-Prompts",
	"bibliotecadev":                      "BibliotecaDev",
}

// referencePatterns are looser structural hints that a question is about the
// Git_Projects repository even when it is not named directly. Known to
// false-positive on generic phrases ("github api"); kept as-is deliberately.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)git[_-]?projects?`),
	regexp.MustCompile(`(?i)reposit[oó]rio.*git`),
	regexp.MustCompile(`(?i)to\s*do\s*list`),
	regexp.MustCompile(`(?i)encurtador.*url`),
	regexp.MustCompile(`(?i)fibonacci`),
	regexp.MustCompile(`(?i)interface.*gráfica`),
	regexp.MustCompile(`(?i)github.*api`),
}

// patternTarget is the canonical identifier all pattern matches resolve to.
const patternTarget = "Git_Projects"

// Detect scans user text for a known project reference and returns the
// canonical repository name. The curated list is checked first (first match
// wins), then the structural patterns. Returns "" when nothing matches.
func Detect(text string) string {
	lower := strings.ToLower(text)

	for _, project := range knownProjects {
		if strings.Contains(lower, project) {
			return Normalize(project)
		}
	}

	for _, pattern := range referencePatterns {
		if pattern.MatchString(lower) {
			return patternTarget
		}
	}

	return ""
}

// Normalize maps a project name variant to its canonical repository name.
// Unknown names pass through unchanged.
func Normalize(name string) string {
	if canonical, ok := canonicalNames[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// catalogPatterns catch questions about the portfolio as a whole rather
// than one project.
var catalogPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(quais|todos|lista|liste|mostre).{0,30}(projetos|reposit[oó]rios)`),
	regexp.MustCompile(`(?i)(projetos|reposit[oó]rios).{0,20}(do lukas|dele|no github)`),
	regexp.MustCompile(`(?i)portf[oó]lio`),
}

// DetectCatalog reports whether the text asks about the project catalog in
// general. Specific project references take precedence; callers should try
// Detect first.
func DetectCatalog(text string) bool {
	for _, pattern := range catalogPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
