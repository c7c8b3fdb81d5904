package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/oauth"
	oauthMocks "hotel/infras/oauth/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/password"
)

const userID = "6f1c2a9e-1b7d-4c55-9d7e-0b1f6a9b8c11"

type fixture struct {
	repo   *userMocks.MockUser
	jwt    *jwtMocks.MockJWT
	google *oauthMocks.MockGoogle
	cache  *cacheMocks.MockRedisCache
	svc    service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:   userMocks.NewMockUser(ctrl),
		jwt:    jwtMocks.NewMockJWT(ctrl),
		google: oauthMocks.NewMockGoogle(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 600

	f.svc = service.New(f.repo, cfg, mocks.NewOtel(), f.jwt, f.google, f.cache)

	return f
}

func hashed(t *testing.T, pw string) *string {
	t.Helper()

	h, err := password.HashWithCost(pw, 4)
	require.NoError(t, err)

	return &h
}

func token() jwt.Token {
	return jwt.Token{AccessToken: "signed", TokenType: "Bearer", ExpiresAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "registers a guest",
			req:  dto.RegisterRequest{Email: " New@Hotel.com", Password: "secret1", Name: "New"},
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u userModel.User) error {
					assert.Equal(t, "new@hotel.com", u.Email)
					assert.Equal(t, constant.RoleGuest, u.Role)
					assert.Equal(t, constant.AuthProviderLocal, u.AuthProvider)
					assert.NoError(t, password.Verify("secret1", u.PasswordHash()))

					return nil
				})
				f.jwt.EXPECT().Generate(gomock.Any(), gomock.Any(), "new@hotel.com", constant.RoleGuest).Return(token(), nil)
			},
		},
		{
			name: "duplicate email",
			req:  dto.RegisterRequest{Email: "dup@hotel.com", Password: "secret1", Name: "Dup"},
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "email taken between check and insert",
			req:  dto.RegisterRequest{Email: "race@hotel.com", Password: "secret1", Name: "Race"},
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (user): %w", &pq.Error{Code: "23505"}))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "insert failure",
			req:  dto.RegisterRequest{Email: "x@hotel.com", Password: "secret1", Name: "X"},
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Register(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed", res.Token)
			assert.Equal(t, "new@hotel.com", res.User.Email)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)

	user := userModel.User{ID: userID, Email: "guest@hotel.com", Role: constant.RoleGuest, IsActive: true, Password: hashed(t, "secret1")}
	inactive := user
	inactive.IsActive = false
	federated := user
	federated.Password = nil

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
		wantMsg   string
	}{
		{
			name: "valid credentials",
			req:  dto.LoginRequest{Email: "GUEST@hotel.com", Password: "secret1"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().Generate(gomock.Any(), userID, user.Email, constant.RoleGuest).Return(token(), nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.com", Password: "secret1"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid credentials",
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "guest@hotel.com", Password: "nope"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid credentials",
		},
		{
			name: "google-only account has no password",
			req:  dto.LoginRequest{Email: "guest@hotel.com", Password: "secret1"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(federated, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid credentials",
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "guest@hotel.com", Password: "secret1"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "account is deactivated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantMsg, err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed", res.Token)
			assert.Equal(t, userID, res.User.ID)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := identity.WithContext(context.Background(), identity.Identity{UserID: userID, Role: constant.RoleGuest})

	user := userModel.User{ID: userID, Password: hashed(t, "secret1"), IsActive: true}
	federated := userModel.User{ID: userID, IsActive: true}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "changes password",
			ctx:  ctx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					pw, ok := fields[userModel.FieldPassword].(string)
					require.True(t, ok)
					assert.NoError(t, password.Verify("secret2", pw))

					return nil
				})
			},
		},
		{
			name: "wrong current password",
			ctx:  ctx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "bad", NewPassword: "secret2"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "federated account",
			ctx:  ctx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(federated, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "anonymous caller",
			ctx:       context.Background(),
			req:       dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.ChangePassword(tt.ctx, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAuthService_GoogleLoginURL(t *testing.T) {
	t.Run("stores state with ttl", func(t *testing.T) {
		f := newFixture(t)

		var saved string

		f.google.EXPECT().Enabled().Return(true)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 600*time.Second).
			DoAndReturn(func(_ context.Context, key string, value any, _ time.Duration) error {
				saved = value.(string)
				assert.Equal(t, "oauth:state:"+saved, key)

				return nil
			})
		f.google.EXPECT().AuthCodeURL(gomock.Any()).DoAndReturn(func(state string) string {
			return "https://accounts.google.com/o/oauth2/auth?state=" + state
		})

		url, err := f.svc.GoogleLoginURL(context.Background())
		require.NoError(t, err)
		assert.Contains(t, url, saved)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t)
		f.google.EXPECT().Enabled().Return(false)

		_, err := f.svc.GoogleLoginURL(context.Background())
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAuthService_GoogleCallback(t *testing.T) {
	profile := oauth.Profile{ID: "g-1", Email: "Guest@Hotel.com", VerifiedEmail: true, Name: "Guest", Picture: "https://img/p.png"}

	tests := []struct {
		name      string
		state     string
		setupMock func(f fixture)
		wantCode  int
		check     func(t *testing.T, res dto.AuthResponse)
	}{
		{
			name:     "missing state",
			setupMock: func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "unknown state",
			state: "s-1",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Take(gomock.Any(), "oauth:state:s-1", gomock.Any()).Return(cache.Nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:  "exchange failure",
			state: "s-1",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.google.EXPECT().Exchange(gomock.Any(), "code").Return(oauth.Profile{}, errors.New("bad code"))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:  "known google id signs in",
			state: "s-1",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.google.EXPECT().Exchange(gomock.Any(), "code").Return(profile, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: userID, Email: "guest@hotel.com", Role: constant.RoleGuest, IsActive: true}, nil)
				f.jwt.EXPECT().Generate(gomock.Any(), userID, "guest@hotel.com", constant.RoleGuest).Return(token(), nil)
			},
			check: func(t *testing.T, res dto.AuthResponse) {
				assert.Equal(t, userID, res.User.ID)
			},
		},
		{
			name:  "links existing email account",
			state: "s-1",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.google.EXPECT().Exchange(gomock.Any(), "code").Return(profile, nil)
				gomock.InOrder(
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil),
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: userID, Email: "guest@hotel.com", Role: constant.RoleStaff, IsActive: true}, nil),
				)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Equal(t, "g-1", fields[userModel.FieldGoogleID])
					assert.Equal(t, "https://img/p.png", fields[userModel.FieldAvatar])

					return nil
				})
				f.jwt.EXPECT().Generate(gomock.Any(), userID, "guest@hotel.com", constant.RoleStaff).Return(token(), nil)
			},
			check: func(t *testing.T, res dto.AuthResponse) {
				assert.Equal(t, constant.RoleStaff, res.User.Role)
			},
		},
		{
			name:  "creates a new guest",
			state: "s-1",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.google.EXPECT().Exchange(gomock.Any(), "code").Return(profile, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil).Times(2)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u userModel.User) error {
					assert.Equal(t, "guest@hotel.com", u.Email)
					assert.Equal(t, constant.AuthProviderGoogle, u.AuthProvider)
					assert.Nil(t, u.Password)
					require.NotNil(t, u.GoogleID)
					assert.Equal(t, "g-1", *u.GoogleID)

					return nil
				})
				f.jwt.EXPECT().Generate(gomock.Any(), gomock.Any(), "guest@hotel.com", constant.RoleGuest).Return(token(), nil)
			},
			check: func(t *testing.T, res dto.AuthResponse) {
				assert.Equal(t, constant.AuthProviderGoogle, res.User.AuthProvider)
			},
		},
		{
			name:  "deactivated account",
			state: "s-1",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.google.EXPECT().Exchange(gomock.Any(), "code").Return(profile, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: userID, IsActive: false}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GoogleCallback(context.Background(), tt.state, "code")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed", res.Token)
			tt.check(t, res)
		})
	}
}
