package oauth_test

import (
	"context"
	"hotel/config"
	"hotel/infras/oauth"
	"hotel/infras/otel/mocks"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogle_Disabled(t *testing.T) {
	google := oauth.NewGoogle(&config.Config{}, mocks.NewOtel())

	assert.False(t, google.Enabled())

	_, err := google.Exchange(context.Background(), "code")
	assert.ErrorIs(t, err, oauth.ErrDisabled)
}

func TestGoogle_AuthCodeURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Google.ClientID = "client-id"
	cfg.External.Google.CallbackURL = "http://localhost:5000/api/auth/google/callback"

	google := oauth.NewGoogle(cfg, mocks.NewOtel())
	require.True(t, google.Enabled())

	parsed, err := url.Parse(google.AuthCodeURL("state-123"))
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "state-123", query.Get("state"))
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, cfg.External.Google.CallbackURL, query.Get("redirect_uri"))
	assert.Equal(t, "profile email", query.Get("scope"))
}
