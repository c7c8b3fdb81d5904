package contact

import (
	"hotel/infras/otel"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Contact, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contact-settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetContactSettings)
		routerGroup.With(handler.auth.Auth, handler.auth.RequireRoles(middleware.RolesAdmin...)).
			Put("/", handler.UpdateContactSettings)
	})
}

// GetContactSettings
// @Summary Get the hotel's contact details
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ContactSettingsResponse}
// @Router /contact-settings [get]
func (handler *Handler) GetContactSettings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactSettings")
	defer scope.End()

	settings, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact settings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, settings)
}

// UpdateContactSettings
// @Summary Update the hotel's contact details
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.UpdateContactSettingsRequest true "Update Contact Settings Request"
// @Success 200 {object} response.Envelope{data=dto.ContactSettingsResponse}
// @Failure 400 {object} response.Envelope
// @Router /contact-settings [put]
// @Security BearerAuth
func (handler *Handler) UpdateContactSettings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactSettings")
	defer scope.End()

	req := dto.UpdateContactSettingsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	settings, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact settings")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, "Contact settings updated successfully", settings)
}
