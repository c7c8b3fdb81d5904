package content

import (
	"hotel/infras/otel"
	"hotel/internal/domains/content/model/dto"
	"hotel/internal/domains/content/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Content
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Content, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	pageName := "/{" + constant.RequestParamPageName + "}"

	router.Route("/content", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPages)
		routerGroup.Get(pageName, handler.GetPage)

		routerGroup.Group(func(admin chi.Router) {
			admin.Use(handler.auth.Auth, handler.auth.RequireRoles(middleware.RolesAdmin...))

			admin.Post("/", handler.UpsertPage)
			admin.Put(pageName, handler.UpdatePage)
		})
	})
}

// GetPages
// @Summary List page content
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.GetPagesResponse}
// @Router /content [get]
func (handler *Handler) GetPages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPages")
	defer scope.End()

	pages, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, pages)
}

// GetPage
// @Summary Get one page's content
// @Tags Content
// @Produce json
// @Param pageName path string true "Page name"
// @Success 200 {object} response.Envelope{data=dto.PageContentResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /content/{pageName} [get]
func (handler *Handler) GetPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPage")
	defer scope.End()

	page, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamPageName))
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to get page")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, page)
}

// UpsertPage
// @Summary Create or replace a page's content
// @Tags Content
// @Accept json
// @Produce json
// @Param request body dto.UpsertPageRequest true "Upsert Page Request"
// @Success 200 {object} response.Envelope{data=dto.PageContentResponse}
// @Failure 400 {object} response.Envelope
// @Router /content [post]
// @Security BearerAuth
func (handler *Handler) UpsertPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertPage")
	defer scope.End()

	req := dto.UpsertPageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	page, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save page")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, "Page content saved successfully", page)
}

// UpdatePage
// @Summary Update a page's content
// @Tags Content
// @Accept json
// @Produce json
// @Param pageName path string true "Page name"
// @Param request body dto.UpdatePageRequest true "Update Page Request"
// @Success 200 {object} response.Envelope{data=dto.PageContentResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /content/{pageName} [put]
// @Security BearerAuth
func (handler *Handler) UpdatePage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePage")
	defer scope.End()

	req := dto.UpdatePageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	page, err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamPageName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update page")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, "Page content updated successfully", page)
}
