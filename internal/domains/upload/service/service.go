package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/upload/model"
	"hotel/internal/domains/upload/model/dto"
	"hotel/shared/constant"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const parallelUploads = 4

type Upload interface {
	UploadSingle(ctx context.Context, file dto.File) (dto.UploadResponse, error)
	UploadMultiple(ctx context.Context, files []dto.File) (dto.UploadMultipleResponse, error)
	Delete(ctx context.Context, req dto.DeleteRequest) error
}

type serviceImpl struct {
	storage s3.Storage
	otel    otel.Otel
}

func New(storage s3.Storage, otel otel.Otel) Upload {
	return &serviceImpl{
		storage: storage,
		otel:    otel,
	}
}

func (s *serviceImpl) UploadSingle(ctx context.Context, file dto.File) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadSingle")
	defer scope.End()
	defer scope.TraceIfError(err)

	img, err := model.Check(file.Name, file.Data)
	if err != nil {
		return res, err
	}

	return s.put(ctx, img)
}

// UploadMultiple checks every file before storing any of them, then stores
// them in parallel. Results keep the request order.
func (s *serviceImpl) UploadMultiple(ctx context.Context, files []dto.File) (res dto.UploadMultipleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadMultiple")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(files) == 0 {
		return res, model.ErrNoFile
	}

	if len(files) > model.MaxFiles {
		return res, model.ErrTooManyFiles
	}

	images := make([]model.Image, len(files))
	for i, file := range files {
		if images[i], err = model.Check(file.Name, file.Data); err != nil {
			return res, err
		}
	}

	res.Files = make([]dto.UploadResponse, len(images))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelUploads)

	for i, img := range images {
		group.Go(func() error {
			uploaded, err := s.put(groupCtx, img)
			if err != nil {
				return err
			}

			res.Files[i] = uploaded

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return dto.UploadMultipleResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	publicID := strings.TrimSpace(req.PublicID)
	if publicID == constant.Empty {
		return model.ErrPublicIDEmpty
	}

	if !model.ValidPublicID(publicID) {
		return model.ErrPublicID
	}

	// runs to completion even if the client disconnects
	if err = s.storage.Delete(context.WithoutCancel(ctx), publicID); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	log.Info().Str("public_id", publicID).Msg("image deleted")

	return nil
}

func (s *serviceImpl) put(ctx context.Context, img model.Image) (res dto.UploadResponse, err error) {
	url, err := s.storage.Put(ctx, img.PublicID, img.ContentType, img.Data)
	if err != nil {
		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	res.FromModel(url, img)

	return res, nil
}
