package auth

import (
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryState = "state"
	queryCode  = "code"
)

type Handler struct {
	service service.Auth
	auth    middleware.Auth
	config  *config.Config
	otel    otel.Otel
}

func New(service service.Auth, auth middleware.Auth, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		config:  config,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/auth/register", handler.Register)
	r.Post("/auth/login", handler.Login)
	r.With(handler.auth.Auth).Post("/auth/change-password", handler.ChangePassword)
	r.Get("/auth/google", handler.GoogleLogin)
	r.Get("/auth/google/callback", handler.GoogleCallback)
}

// Register creates a guest account and signs it in.
// @Summary Register a new guest
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Envelope{data=dto.AuthResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")

	response.WithData(w, http.StatusCreated, "User registered successfully", res)
}

// Login exchanges credentials for a token.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Envelope{data=dto.AuthResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to login")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in successfully")

	response.WithData(w, http.StatusOK, "Login successful", res)
}

// ChangePassword
// @Summary Change the caller's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}

// GoogleLogin redirects to the Google consent screen.
// @Summary Start Google sign-in
// @Tags Auth
// @Success 302
// @Failure 404 {object} response.Envelope
// @Router /auth/google [get]
func (handler *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoogleLogin")
	defer scope.End()

	consentURL, err := handler.service.GoogleLoginURL(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start google sign-in")

		response.WithError(w, err)

		return
	}

	http.Redirect(w, r, consentURL, http.StatusFound)
}

// GoogleCallback finishes Google sign-in and hands the token to the frontend.
// @Summary Google sign-in callback
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 302
// @Router /auth/google/callback [get]
func (handler *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoogleCallback")
	defer scope.End()

	query := r.URL.Query()

	res, err := handler.service.GoogleCallback(ctx, query.Get(queryState), query.Get(queryCode))
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("google sign-in failed")

		http.Redirect(w, r, handler.config.App.FrontendURL+"/login?error=auth_failed", http.StatusFound)

		return
	}

	target := handler.config.App.FrontendURL + "/auth/callback?" + url.Values{"token": {res.Token}}.Encode()

	http.Redirect(w, r, target, http.StatusFound)
}
