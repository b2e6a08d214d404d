// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lukasdevjobs1/profile-chat/internal/util"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the GitHub client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotFound
	ErrTypeTransport
	ErrTypeRateLimited
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotFound    = &ClientError{Type: ErrTypeNotFound, Message: "repository not found"}
	ErrRateLimited = &ClientError{Type: ErrTypeRateLimited, Message: "GitHub API rate limit exceeded"}
)

// IsNotFound checks if an error is a repository-not-found error.
func IsNotFound(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsTransport checks if an error is a network or backend failure.
func IsTransport(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTransport
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the GitHub client.
type ClientConfig struct {
	// BaseURL is the GitHub API base URL (default: https://api.github.com)
	BaseURL string

	// Username is the account whose repositories are looked up.
	Username string

	// Timeout for API requests (default: 15s)
	Timeout time.Duration

	// RequestsPerSecond limits outgoing API calls. Unauthenticated GitHub
	// access allows 60 requests/hour, so the default is conservative.
	RequestsPerSecond float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "https://api.github.com",
		Username:          "lukasdevjobs1",
		Timeout:           15 * time.Second,
		RequestsPerSecond: 1,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client fetches repository metadata from the GitHub API.
//
// Each repository snapshot combines three lookups: basic metadata, the
// language breakdown, and the readme. The Client is thread-safe for
// concurrent use.
type Client struct {
	mu         sync.RWMutex
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new GitHub client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new GitHub client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "https://api.github.com"
	}
	if config.Username == "" {
		config.Username = "lukasdevjobs1"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 1
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 3),
	}
}

// Username returns the configured GitHub account name.
func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Username
}

// SetUsername changes the account whose repositories are looked up. Used by
// config hot reload.
func (c *Client) SetUsername(username string) {
	if username == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Username = username
}

// =============================================================================
// REPOSITORY LOOKUPS
// =============================================================================

// GetRepository fetches the combined metadata snapshot for one repository:
// basic metadata, language breakdown, and readme excerpt.
//
// Language and readme lookups are best-effort; only the basic metadata
// lookup can fail the whole call.
func (c *Client) GetRepository(ctx context.Context, name string) (*Repository, error) {
	repo, err := c.getRepoMetadata(ctx, name)
	if err != nil {
		return nil, err
	}

	languages, err := c.getLanguages(ctx, name)
	if err != nil {
		languages = map[string]int64{}
	}

	readme, err := c.getReadme(ctx, name)
	if err != nil {
		readme = ""
	}

	description := repo.Description
	if description == "" {
		description = "Sem descrição"
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	return &Repository{
		Name:        repo.Name,
		Description: description,
		Stars:       repo.StargazersCount,
		Forks:       repo.ForksCount,
		Language:    repo.Language,
		Languages:   languages,
		Size:        repo.Size,
		CreatedAt:   repo.CreatedAt,
		UpdatedAt:   repo.UpdatedAt,
		Homepage:    repo.Homepage,
		Topics:      topics,
		Readme:      util.TruncateRunesNoEllipsis(readme, MaxReadmeChars),
		URL:         repo.HTMLURL,
		IsFork:      repo.Fork,
	}, nil
}

// ListRepositories fetches all repositories for the configured user, newest
// updates first.
func (c *Client) ListRepositories(ctx context.Context) ([]RepoSummary, error) {
	url := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.config.BaseURL, c.Username())

	var repos []RepoSummary
	if err := c.getJSON(ctx, url, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) getRepoMetadata(ctx context.Context, name string) (*repoResponse, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.config.BaseURL, c.Username(), name)

	var repo repoResponse
	if err := c.getJSON(ctx, url, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

func (c *Client) getLanguages(ctx context.Context, name string) (map[string]int64, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/languages", c.config.BaseURL, c.Username(), name)

	languages := map[string]int64{}
	if err := c.getJSON(ctx, url, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

func (c *Client) getReadme(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme", c.config.BaseURL, c.Username(), name)

	var readme readmeResponse
	if err := c.getJSON(ctx, url, &readme); err != nil {
		return "", err
	}

	// GitHub delivers readme content base64-encoded with embedded newlines.
	if readme.Encoding == "base64" || readme.Encoding == "" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(readme.Content, "\n", ""))
		if err != nil {
			return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode readme", Cause: err}
		}
		return string(decoded), nil
	}

	return readme.Content, nil
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "request cancelled", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "GitHub request failed", Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return &ClientError{
			Type:    ErrTypeTransport,
			Message: "unexpected status from GitHub: " + resp.Status,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}
