package upload

import (
	"hotel/infras/otel"
	"hotel/internal/domains/upload/model"
	"hotel/internal/domains/upload/model/dto"
	"hotel/internal/domains/upload/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxRequestBytes leaves room for multipart framing around the largest batch.
const maxRequestBytes = model.MaxFiles*model.MaxFileBytes + constant.RequestMaxMemory

type Handler struct {
	service service.Upload
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Upload, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/upload", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Auth, handler.auth.RequireRoles(middleware.RolesStaff...))

		routerGroup.Post("/single", handler.UploadSingle)
		routerGroup.Post("/multiple", handler.UploadMultiple)
		routerGroup.Delete("/", handler.Delete)
	})
}

// UploadSingle
// @Summary Upload one image
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image (jpg, jpeg, png, gif, webp; max 5MB, 2000x2000)"
// @Success 200 {object} response.Envelope{data=dto.UploadResponse}
// @Failure 400 {object} response.Envelope
// @Router /upload/single [post]
// @Security BearerAuth
func (handler *Handler) UploadSingle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadSingle")
	defer scope.End()

	files, err := readFiles(writer, request, constant.FormFileSingle)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded file")

		response.WithError(writer, err)

		return
	}

	uploaded, err := handler.service.UploadSingle(ctx, files[0])
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload image")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, "Image uploaded successfully", uploaded)
}

// UploadMultiple
// @Summary Upload up to 10 images
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Images"
// @Success 200 {object} response.Envelope{data=dto.UploadMultipleResponse}
// @Failure 400 {object} response.Envelope
// @Router /upload/multiple [post]
// @Security BearerAuth
func (handler *Handler) UploadMultiple(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadMultiple")
	defer scope.End()

	files, err := readFiles(writer, request, constant.FormFileMultiple)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded files")

		response.WithError(writer, err)

		return
	}

	uploaded, err := handler.service.UploadMultiple(ctx, files)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload images")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, "Images uploaded successfully", uploaded)
}

// Delete
// @Summary Delete an uploaded image
// @Tags Upload
// @Accept json
// @Produce json
// @Param request body dto.DeleteRequest true "Delete Request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /upload [delete]
// @Security BearerAuth
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	req := dto.DeleteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete image")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Image deleted successfully")
}

func readFiles(writer http.ResponseWriter, request *http.Request, field string) ([]dto.File, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxRequestBytes)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return nil, failure.BadRequestFromString("invalid multipart form")
	}

	headers := request.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, model.ErrNoFile
	}

	if len(headers) > model.MaxFiles {
		return nil, model.ErrTooManyFiles
	}

	files := make([]dto.File, len(headers))
	for i, header := range headers {
		if err := files[i].FromHeader(header); err != nil {
			return nil, err
		}
	}

	return files, nil
}
