// Package identity carries the authenticated caller through a request context.
package identity

import (
	"context"
	"slices"
)

type ctxKey struct{}

// Identity is the caller resolved by the auth middleware from a fresh user
// lookup, never from token claims alone.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller and whether one was attached.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)

	return id, ok && id.UserID != ""
}

func (i Identity) HasRole(roles ...string) bool {
	return slices.Contains(roles, i.Role)
}
