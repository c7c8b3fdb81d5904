package identity_test

import (
	"context"
	"hotel/shared/identity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	_, ok := identity.FromContext(context.Background())
	assert.False(t, ok)

	ctx := identity.WithContext(context.Background(), identity.Identity{UserID: "u-1", Email: "guest@hotel.test", Role: "guest"})

	got, ok := identity.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, got.HasRole("guest", "staff"))
	assert.False(t, got.HasRole("admin"))
}

func TestFromContext_EmptyIdentity(t *testing.T) {
	ctx := identity.WithContext(context.Background(), identity.Identity{})

	_, ok := identity.FromContext(ctx)
	assert.False(t, ok)
}
