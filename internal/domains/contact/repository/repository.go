package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/contact/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Contact interface {
	Upsert(ctx context.Context, model model.ContactSettings, conflictColumns []string, updateColumns ...string) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ContactSettings, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ContactSettings]
}

func New(db *postgres.Connection, otel otel.Otel) Contact {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ContactSettings](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
