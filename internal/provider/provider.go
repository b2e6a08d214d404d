// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"

	"github.com/lukasdevjobs1/profile-chat/internal/model"
)

// =============================================================================
// CAPABILITY CONTRACT
// =============================================================================

// Request carries everything an adapter needs for one completion call. The
// system prompt is per-request because enrichment varies with the user's
// message; adapters whose backing session fixes the prompt at creation time
// may ignore it.
type Request struct {
	SystemPrompt string
	UserText     string
	History      []model.Turn
}

// Provider is the uniform capability contract every model backend
// implements. New providers are added by implementing these two operations
// and registering with the router; nothing else in the system branches on
// the concrete type.
//
// Both current adapters return the complete answer atomically; the paced
// fragment streaming the UI sees is layered on top by the stream package.
type Provider interface {
	// Name identifies the adapter in logs and status output.
	Name() string

	// Initialize prepares the provider for use. It must be safe to call
	// again after a failure. A successful call stores the system prompt for
	// later session recreation where the backend supports it.
	Initialize(ctx context.Context, systemPrompt string) error

	// Respond sends the enriched conversation and returns the complete
	// answer text. Fails with ErrProviderUnavailable when not initialized,
	// a transport error on network/backend failure, and ErrCancelled when
	// ctx is already cancelled before any output is produced.
	Respond(ctx context.Context, req Request) (string, error)
}
