package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/expense/model"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Expense interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (dto.ExpenseResponse, error)
	GetAll(ctx context.Context, filter dto.ListExpensesFilter) (dto.GetExpensesResponse, error)
	Get(ctx context.Context, id string) (dto.ExpenseResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateExpenseRequest) (dto.ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, filter dto.ListExpensesFilter) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo repository.Expense
	otel otel.Otel
}

func New(repo repository.Expense, otel otel.Otel) Expense {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExpenseRequest) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.UnauthenticatedError
	}

	date, err := req.Validate()
	if err != nil {
		return res, err
	}

	expense := req.ToModel(caller.UserID, date)

	if err = s.repo.Insert(ctx, expense); err != nil {
		log.Error().Err(err).Msg("failed to create expense")

		return res, fmt.Errorf("failed to create expense: %w", err)
	}

	res.FromModel(expense)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListExpensesFilter) (res dto.GetExpensesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	group, err := filter.ToFilterGroup()
	if err != nil {
		return res, err
	}

	expenses, err := s.repo.GetAll(ctx, gDto.Sorted(model.FieldDate, gDto.SortDirDesc), group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses")

		return res, fmt.Errorf("failed to get expenses: %w", err)
	}

	res.FromModels(expenses)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(expense)

	return res, nil
}

// Update applies a partial change. Approving or rejecting records the caller
// as the approver.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateExpenseRequest) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Amount != nil && req.Amount.IsNegative() {
		return res, model.ErrNegativeAmount
	}

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)
	fields := shared.TransformFields(req, caller.UserID)

	if req.Date != constant.Empty {
		date, err := timezone.ParseDate(req.Date)
		if err != nil {
			return res, model.ErrInvalidDate
		}

		fields[model.FieldDate] = date
	}

	if req.Decides() {
		fields[model.FieldApprovedBy] = caller.UserID
	}

	if err = s.repo.Update(ctx, fields, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update expense")

		return res, fmt.Errorf("failed to update expense: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete expense")

		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

// Stats aggregates in the database, one grouped query per breakdown.
func (s *serviceImpl) Stats(ctx context.Context, filter dto.ListExpensesFilter) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	dates := dto.ListExpensesFilter{StartDate: filter.StartDate, EndDate: filter.EndDate}

	where, err := dates.ToFilterGroup()
	if err != nil {
		return res, err
	}

	var byCategory, byStatus, byPaymentMethod []model.Bucket

	group, groupCtx := errgroup.WithContext(ctx)

	summarize := func(column string, dest *[]model.Bucket) {
		group.Go(func() error {
			buckets, err := s.repo.Summarize(groupCtx, column, where)
			if err != nil {
				return fmt.Errorf("failed to summarize expenses by %s: %w", column, err)
			}

			*dest = buckets

			return nil
		})
	}

	summarize(model.FieldCategory, &byCategory)
	summarize(model.FieldStatus, &byStatus)
	summarize(model.FieldPaymentMethod, &byPaymentMethod)

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to get expense stats")

		return res, err
	}

	res.FromBuckets(byCategory, byStatus, byPaymentMethod)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Expense, error) {
	if !shared.IsUUID(id) {
		return model.Expense{}, model.ErrNotFound
	}

	expense, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get expense")

		return expense, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.ID == constant.Empty {
		return expense, model.ErrNotFound
	}

	return expense, nil
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}
