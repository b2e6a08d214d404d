// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package github provides the GitHub API client and metadata cache for
// repository enrichment.
package github

import "time"

// MaxReadmeChars is the number of readme characters kept in a Repository
// snapshot. The full readme can run to tens of kilobytes; the enrichment
// block only ever shows an excerpt.
const MaxReadmeChars = 2000

// Repository is an immutable snapshot of repository metadata assembled from
// the basic metadata, language breakdown, and readme lookups. It is never
// mutated after creation; cache refreshes replace the whole snapshot.
type Repository struct {
	Name        string
	Description string
	Stars       int
	Forks       int
	Language    string
	Languages   map[string]int64
	Size        int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Homepage    string
	Topics      []string
	Readme      string
	URL         string
	IsFork      bool
}

// repoResponse matches the GitHub /repos/{owner}/{repo} payload fields the
// client needs.
type repoResponse struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Language        string    `json:"language"`
	Size            int       `json:"size"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Homepage        string    `json:"homepage"`
	Topics          []string  `json:"topics"`
	HTMLURL         string    `json:"html_url"`
	Fork            bool      `json:"fork"`
}

// readmeResponse matches the GitHub /readme payload. Content is base64 with
// embedded newlines.
type readmeResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// RepoSummary is one entry from the repository listing endpoint.
type RepoSummary struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Fork        bool      `json:"fork"`
}
