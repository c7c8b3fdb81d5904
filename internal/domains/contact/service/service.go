package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Contact interface {
	Get(ctx context.Context) (dto.ContactSettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateContactSettingsRequest) (dto.ContactSettingsResponse, error)
}

type serviceImpl struct {
	repo repository.Contact
	otel otel.Otel
}

func New(repo repository.Contact, otel otel.Otel) Contact {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.ContactSettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	settings, err := s.findOrCreate(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(settings)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateContactSettingsRequest) (res dto.ContactSettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.findOrCreate(ctx); err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)
	req.Email = shared.NormalizeEmail(req.Email)

	err = s.repo.Update(ctx, shared.TransformFields(req, caller.UserID), singleton())
	if err != nil {
		log.Error().Err(err).Msg("failed to update contact settings")

		return res, fmt.Errorf("failed to update contact settings: %w", err)
	}

	settings, err := s.get(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(settings)

	return res, nil
}

// findOrCreate inserts the default row unless one already exists, then reads it.
func (s *serviceImpl) findOrCreate(ctx context.Context) (model.ContactSettings, error) {
	defaults := model.Defaults(constant.ContextSystem, timezone.Now())

	if err := s.repo.Upsert(ctx, defaults, []string{model.FieldSingletonKey}); err != nil {
		log.Error().Err(err).Msg("failed to ensure contact settings")

		return model.ContactSettings{}, fmt.Errorf("failed to ensure contact settings: %w", err)
	}

	return s.get(ctx)
}

func (s *serviceImpl) get(ctx context.Context) (model.ContactSettings, error) {
	settings, err := s.repo.Get(ctx, singleton())
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact settings")

		return settings, fmt.Errorf("failed to get contact settings: %w", err)
	}

	if settings.ID == constant.Empty {
		return settings, fmt.Errorf("contact settings row %q is missing", model.SingletonKey)
	}

	return settings, nil
}

func singleton() gDto.FilterGroup {
	return shared.FilterByField(model.FieldSingletonKey, model.SingletonKey, model.TableName)
}
