// Package context provides context utilities for turn tracking
package context

import (
	stdctx "context"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey int

const (
	// TurnIDKey is the context key for chat turn IDs
	TurnIDKey contextKey = iota
	// ProviderKey is the context key for the tool provider name
	ProviderKey
)

// NewTurnID generates a new unique turn ID
func NewTurnID() string {
	return uuid.New().String()
}

// WithTurnID adds a turn ID to the context
func WithTurnID(parent stdctx.Context, turnID string) stdctx.Context {
	return stdctx.WithValue(parent, TurnIDKey, turnID)
}

// TurnIDFromContext extracts the turn ID from the context
func TurnIDFromContext(ctx stdctx.Context) string {
	if ctx == nil {
		return ""
	}
	if turnID, ok := ctx.Value(TurnIDKey).(string); ok {
		return turnID
	}
	return ""
}

// WithProvider tags the context with the tool provider serving it
func WithProvider(parent stdctx.Context, name string) stdctx.Context {
	return stdctx.WithValue(parent, ProviderKey, name)
}

// ProviderFromContext extracts the provider name from the context
func ProviderFromContext(ctx stdctx.Context) string {
	if ctx == nil {
		return ""
	}
	if name, ok := ctx.Value(ProviderKey).(string); ok {
		return name
	}
	return ""
}
