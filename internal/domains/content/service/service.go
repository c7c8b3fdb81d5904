package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/content/model"
	"hotel/internal/domains/content/model/dto"
	"hotel/internal/domains/content/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/identity"

	"github.com/rs/zerolog/log"
)

type Content interface {
	GetAll(ctx context.Context) (dto.GetPagesResponse, error)
	Get(ctx context.Context, pageName string) (dto.PageContentResponse, error)
	Upsert(ctx context.Context, req dto.UpsertPageRequest) (dto.PageContentResponse, error)
	Update(ctx context.Context, req dto.UpdatePageRequest, pageName string) (dto.PageContentResponse, error)
}

type serviceImpl struct {
	repo repository.Content
	otel otel.Otel
}

func New(repo repository.Content, otel otel.Otel) Content {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetPagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	pages, err := s.repo.GetAll(ctx, gDto.Sorted(model.FieldPageName, gDto.SortDirAsc), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get pages")

		return res, fmt.Errorf("failed to get pages: %w", err)
	}

	res.FromModels(pages)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, pageName string) (res dto.PageContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	page, err := s.find(ctx, pageName)
	if err != nil {
		return res, err
	}

	res.FromModel(page)

	return res, nil
}

// Upsert creates the page or replaces its sections and metadata.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertPageRequest) (res dto.PageContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.Validate(); err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)

	err = s.repo.Upsert(ctx, req.ToModel(caller.UserID), []string{model.FieldPageName},
		model.FieldSections, model.FieldMetadata, constant.FieldModifiedAt, constant.FieldModifiedBy)
	if err != nil {
		log.Error().Err(err).Msg("failed to save page content")

		return res, fmt.Errorf("failed to save page content: %w", err)
	}

	log.Info().Str("page", req.PageName).Msg("page content saved")

	return s.Get(ctx, req.PageName)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePageRequest, pageName string) (res dto.PageContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.find(ctx, pageName); err != nil {
		return res, err
	}

	if err = req.Validate(); err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)

	err = s.repo.Update(ctx, shared.TransformFields(req, caller.UserID), byPageName(pageName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update page content")

		return res, fmt.Errorf("failed to update page content: %w", err)
	}

	return s.Get(ctx, pageName)
}

func (s *serviceImpl) find(ctx context.Context, pageName string) (model.PageContent, error) {
	if !model.IsPageName(pageName) {
		return model.PageContent{}, model.ErrUnknownPage
	}

	page, err := s.repo.Get(ctx, byPageName(pageName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get page content")

		return page, fmt.Errorf("failed to get page content: %w", err)
	}

	if page.ID == constant.Empty {
		return page, model.ErrPageNotFound
	}

	return page, nil
}

func byPageName(pageName string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldPageName, pageName, model.TableName)
}
