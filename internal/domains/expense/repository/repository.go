package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/expense/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"slices"
)

var groupableColumns = []string{model.FieldCategory, model.FieldStatus, model.FieldPaymentMethod}

type Expense interface {
	Insert(ctx context.Context, model model.Expense) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Expense, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Expense, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Summarize(ctx context.Context, groupBy string, filter gDto.FilterGroup) ([]model.Bucket, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Expense]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Expense {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Expense](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Summarize counts and sums amounts per distinct value of groupBy.
func (repo *repositoryImpl) Summarize(ctx context.Context, groupBy string, filter gDto.FilterGroup) ([]model.Bucket, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".expense.Summarize")
	defer scope.End()

	if !slices.Contains(groupableColumns, groupBy) {
		return nil, fmt.Errorf("cannot group expenses by %q", groupBy)
	}

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf(
		"SELECT %[1]s.%[2]s AS key, COUNT(*) AS count, COALESCE(SUM(%[1]s.%[3]s), 0) AS total FROM %[1]s %[4]s GROUP BY %[1]s.%[2]s ORDER BY %[1]s.%[2]s",
		model.TableName, groupBy, model.FieldAmount, where,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	buckets := []model.Bucket{}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return buckets, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &buckets, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return buckets, fmt.Errorf("failed to summarize data (%s): %w", model.EntityName, err)
	}

	return buckets, nil
}
