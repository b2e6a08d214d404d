// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider defines the model-provider capability contract, the
// concrete adapters, and the priority router that selects between them.
package provider

import (
	"context"
	"errors"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ProviderError represents an error from a provider or the router.
type ProviderError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes provider errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnavailable
	ErrTypeNoProvider
	ErrTypeNotReady
	ErrTypeTransport
	ErrTypeCancelled
)

// Sentinel errors for easy checking.
var (
	// ErrProviderUnavailable means the adapter was asked to respond before a
	// successful initialization, or its backing capability is absent.
	ErrProviderUnavailable = &ProviderError{Type: ErrTypeUnavailable, Message: "provider not initialized"}

	// ErrNoProviderAvailable means every adapter failed initialization.
	ErrNoProviderAvailable = &ProviderError{Type: ErrTypeNoProvider, Message: "no provider available"}

	// ErrRouterNotReady means Respond was called before any adapter was
	// successfully activated.
	ErrRouterNotReady = &ProviderError{Type: ErrTypeNotReady, Message: "router has no active provider"}

	// ErrCancelled means the cancellation token fired before a response was
	// produced.
	ErrCancelled = &ProviderError{Type: ErrTypeCancelled, Message: "request cancelled"}
)

// IsCancelled reports whether err represents a user cancellation, either the
// provider sentinel or a cancelled context.
func IsCancelled(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) && providerErr.Type == ErrTypeCancelled {
		return true
	}
	return errors.Is(err, context.Canceled)
}

// IsTransport reports whether err is a network or backend failure.
func IsTransport(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Type == ErrTypeTransport
}

// IsUnavailable reports whether err means the adapter cannot serve at all.
func IsUnavailable(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Type == ErrTypeUnavailable
}
