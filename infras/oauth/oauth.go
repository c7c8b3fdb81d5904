package oauth

//go:generate go run go.uber.org/mock/mockgen -source=./oauth.go -destination=./mocks/oauth_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrDisabled = errors.New("google sign-in is not configured")

// Profile is the subset of the Google userinfo document used to sign users in.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type Google interface {
	Enabled() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Profile, error)
}

type googleImpl struct {
	config *oauth2.Config
	otel   otel.Otel
}

func NewGoogle(cfg *config.Config, otel otel.Otel) Google {
	settings := cfg.External.Google
	if settings.ClientID == "" {
		log.Warn().Msg("Google client id not configured, federated login disabled")
	}

	return &googleImpl{
		config: &oauth2.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			RedirectURL:  settings.CallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		otel: otel,
	}
}

func (g *googleImpl) Enabled() bool {
	return g.config.ClientID != ""
}

func (g *googleImpl) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *googleImpl) Exchange(ctx context.Context, code string) (profile Profile, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelOAuthScopeName, constant.OtelOAuthScopeName+".Exchange")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !g.Enabled() {
		return profile, ErrDisabled
	}

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return profile, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return profile, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return profile, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return profile, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, fmt.Errorf("failed to decode google profile: %w", err)
	}

	if profile.ID == "" || profile.Email == "" {
		return profile, errors.New("google profile is missing id or email")
	}

	return profile, nil
}
