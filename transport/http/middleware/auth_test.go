package middleware_test

import (
	"errors"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/transport/http/middleware"
	"hotel/transport/http/middleware/mocks"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	jwt   *jwtMocks.MockJWT
	users *mocks.MockIdentityResolver
	auth  middleware.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtMock := jwtMocks.NewMockJWT(ctrl)
	users := mocks.NewMockIdentityResolver(ctrl)

	return fixture{
		jwt:   jwtMock,
		users: users,
		auth:  middleware.NewAuthMiddleware(jwtMock, users, otelMocks.NewOtel()),
	}
}

// echo writes the caller's role, or "anonymous".
func echo() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anonymous"))

			return
		}

		_, _ = w.Write([]byte(id.Role))
	})
}

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

func TestAuth(t *testing.T) {
	guest := identity.Identity{UserID: "u-1", Email: "guest@hotel.com", Role: "guest"}

	tests := []struct {
		name      string
		header    string
		setupMock func(f fixture)
		wantCode  int
		wantBody  string
	}{
		{
			name:     "missing header",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			header:   "Token abc",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate(gomock.Any(), "expired").Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "account deactivated after token issue",
			header: "Bearer good",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate(gomock.Any(), "good").Return(&jwt.Claims{UserID: "u-1", Email: "guest@hotel.com", Role: "admin"}, nil)
				f.users.EXPECT().ResolveIdentity(gomock.Any(), "u-1").Return(identity.Identity{}, failure.Unauthorized("account is deactivated"))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "store failure",
			header: "Bearer good",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate(gomock.Any(), "good").Return(&jwt.Claims{UserID: "u-1"}, nil)
				f.users.EXPECT().ResolveIdentity(gomock.Any(), "u-1").Return(identity.Identity{}, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:   "role comes from the store, not the token",
			header: "Bearer good",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate(gomock.Any(), "good").Return(&jwt.Claims{UserID: "u-1", Role: "admin"}, nil)
				f.users.EXPECT().ResolveIdentity(gomock.Any(), "u-1").Return(guest, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "guest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			f.auth.Auth(echo()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Run("no header proceeds anonymously", func(t *testing.T) {
		f := newFixture(t)
		rec := httptest.NewRecorder()

		f.auth.OptionalAuth(echo()).ServeHTTP(rec, request(""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("invalid token proceeds anonymously", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().Validate(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)

		rec := httptest.NewRecorder()
		f.auth.OptionalAuth(echo()).ServeHTTP(rec, request("bad"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().Validate(gomock.Any(), "good").Return(&jwt.Claims{UserID: "u-2"}, nil)
		f.users.EXPECT().ResolveIdentity(gomock.Any(), "u-2").Return(identity.Identity{UserID: "u-2", Role: "staff"}, nil)

		rec := httptest.NewRecorder()
		f.auth.OptionalAuth(echo()).ServeHTTP(rec, request("good"))

		assert.Equal(t, "staff", rec.Body.String())
	})
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{name: "admin on admin route", role: "admin", allowed: middleware.RolesAdmin, wantCode: http.StatusOK},
		{name: "staff on admin route", role: "staff", allowed: middleware.RolesAdmin, wantCode: http.StatusForbidden},
		{name: "staff on staff route", role: "staff", allowed: middleware.RolesStaff, wantCode: http.StatusOK},
		{name: "guest on staff route", role: "guest", allowed: middleware.RolesStaff, wantCode: http.StatusForbidden},
		{name: "guest on guest route", role: "guest", allowed: middleware.RolesGuest, wantCode: http.StatusOK},
		{name: "no identity", allowed: middleware.RolesGuest, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			req := request("")
			if tt.role != "" {
				req = req.WithContext(identity.WithContext(req.Context(), identity.Identity{UserID: "u-1", Role: tt.role}))
			}

			rec := httptest.NewRecorder()
			f.auth.RequireRoles(tt.allowed...)(echo()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
