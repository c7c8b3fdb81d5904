package expense

import (
	"hotel/infras/otel"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Expense
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Expense, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/expenses", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Auth, handler.auth.RequireRoles(middleware.RolesAdmin...))

		routerGroup.Get("/", handler.GetExpenses)
		routerGroup.Post("/", handler.CreateExpense)
		routerGroup.Get("/stats/summary", handler.GetExpenseStats)
		routerGroup.Get("/{"+constant.RequestParamID+"}", handler.GetExpense)
		routerGroup.Put("/{"+constant.RequestParamID+"}", handler.UpdateExpense)
		routerGroup.Delete("/{"+constant.RequestParamID+"}", handler.DeleteExpense)
	})
}

// GetExpenses lists expenses newest first with the total and per-category sums of the result.
// @Summary List expenses
// @Tags Expense
// @Produce json
// @Param category query string false "Category"
// @Param status query string false "Status"
// @Param startDate query string false "Earliest date (YYYY-MM-DD)"
// @Param endDate query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.GetExpensesResponse}
// @Failure 400 {object} response.Envelope
// @Router /expenses [get]
// @Security BearerAuth
func (handler *Handler) GetExpenses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenses")
	defer scope.End()

	filter := dto.ListExpensesFilter{}
	filter.FromRequest(request)

	expenses, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expenses")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, expenses)
}

// GetExpenseStats
// @Summary Summarize expenses by category, status and payment method
// @Tags Expense
// @Produce json
// @Param startDate query string false "Earliest date (YYYY-MM-DD)"
// @Param endDate query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.StatsResponse}
// @Failure 400 {object} response.Envelope
// @Router /expenses/stats/summary [get]
// @Security BearerAuth
func (handler *Handler) GetExpenseStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenseStats")
	defer scope.End()

	filter := dto.ListExpensesFilter{}
	filter.FromRequest(request)

	stats, err := handler.service.Stats(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, stats)
}

// GetExpense
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Envelope{data=dto.ExpenseResponse}
// @Failure 404 {object} response.Envelope
// @Router /expenses/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpense")
	defer scope.End()

	expense, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, expense)
}

// CreateExpense records a pending expense. The date defaults to today.
// @Summary Record an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Create Expense Request"
// @Success 201 {object} response.Envelope{data=dto.ExpenseResponse}
// @Failure 400 {object} response.Envelope
// @Router /expenses [post]
// @Security BearerAuth
func (handler *Handler) CreateExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExpense")
	defer scope.End()

	req := dto.CreateExpenseRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	expense, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create expense")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Expense created successfully")

	response.WithData(writer, http.StatusCreated, "Expense created successfully", expense)
}

// UpdateExpense
// @Summary Update an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Update Expense Request"
// @Success 200 {object} response.Envelope{data=dto.ExpenseResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /expenses/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExpense")
	defer scope.End()

	req := dto.UpdateExpenseRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	expense, err := handler.service.Update(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update expense")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, "Expense updated successfully", expense)
}

// DeleteExpense
// @Summary Delete an expense
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /expenses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExpense")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete expense")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Expense deleted successfully")
}
