package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/content/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Content interface {
	Upsert(ctx context.Context, model model.PageContent, conflictColumns []string, updateColumns ...string) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PageContent, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PageContent, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PageContent]
}

func New(db *postgres.Connection, otel otel.Otel) Content {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PageContent](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
