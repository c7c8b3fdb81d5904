package middleware

//go:generate go run go.uber.org/mock/mockgen -source=./auth.go -destination=./mocks/auth_mock.go -package=mocks

import (
	"context"
	"errors"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/transport/http/response"
	"net/http"

	"github.com/rs/zerolog/log"
)

var (
	RolesGuest = []string{constant.RoleGuest, constant.RoleStaff, constant.RoleAdmin}
	RolesStaff = []string{constant.RoleStaff, constant.RoleAdmin}
	RolesAdmin = []string{constant.RoleAdmin}
)

// IdentityResolver loads the current state of the account a token was issued
// for. It fails with an Unauthorized failure when the account is gone or inactive.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (identity.Identity, error)
}

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	OptionalAuth(http.Handler) http.Handler
	RequireRoles(roles ...string) func(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	users      IdentityResolver
	otel       otel.Otel
}

// NewAuthMiddleware creates a new middleware instance
func NewAuthMiddleware(jwtService jwt.JWT, users IdentityResolver, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		users:      users,
		otel:       otel,
	}
}

// Auth requires a valid bearer token whose account still exists and is active.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		id, err := m.authenticate(ctx, request)
		if err != nil {
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)

			return
		}

		scope.SetAttribute("user.role", id.Role)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(identity.WithContext(request.Context(), id)))
	})
}

// OptionalAuth attaches the caller when a valid token is present and proceeds
// anonymously otherwise.
func (m *authImpl) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get(constant.RequestHeaderAuthorization) == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "optional_auth.middleware")

		id, err := m.authenticate(ctx, request)
		scope.End()

		if err != nil {
			log.Debug().Err(err).Msg("optional auth: proceeding anonymously")
			next.ServeHTTP(writer, request)

			return
		}

		next.ServeHTTP(writer, request.WithContext(identity.WithContext(request.Context(), id)))
	})
}

// RequireRoles rejects callers whose role is outside roles. It must run after Auth.
func (m *authImpl) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			id, ok := identity.FromContext(request.Context())
			if !ok {
				response.WithError(writer, failure.UnauthenticatedError)

				return
			}

			if !id.HasRole(roles...) {
				_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
				scope.SetAttributes(map[string]any{
					"user.role": id.Role,
					"reason":    "role_not_allowed",
				})
				scope.TraceError(failure.ForbiddenError)
				scope.End()

				response.WithError(writer, failure.ForbiddenError)

				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func (m *authImpl) authenticate(ctx context.Context, request *http.Request) (identity.Identity, error) {
	tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
	if err != nil {
		if errors.Is(err, jwt.ErrMissingToken) {
			return identity.Identity{}, failure.Unauthorized("no token provided")
		}

		return identity.Identity{}, failure.Unauthorized("invalid authorization header format")
	}

	claims, err := m.jwtService.Validate(ctx, tokenString)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "token has expired"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "invalid token claims"
		default:
			message = "invalid token"
		}

		return identity.Identity{}, failure.Unauthorized(message)
	}

	id, err := m.users.ResolveIdentity(ctx, claims.UserID)
	if err != nil {
		return identity.Identity{}, err
	}

	return id, nil
}
