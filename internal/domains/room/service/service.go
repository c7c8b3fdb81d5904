package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	errRoomNotFound = "room not found"
	errSlugTaken    = "room with this slug already exists"
)

type Room interface {
	GetAll(ctx context.Context) (dto.GetRoomsResponse, error)
	GetAvailable(ctx context.Context, checkIn, checkOut string) (dto.GetAvailableRoomsResponse, error)
	Get(ctx context.Context, idOrSlug string) (dto.RoomResponse, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, idOrSlug string) (dto.RoomResponse, error)
	Delete(ctx context.Context, idOrSlug string) error
}

type serviceImpl struct {
	repo     repository.Room
	bookings bookingRepo.Booking
	tx       postgres.Transactor
	otel     otel.Otel
}

func New(repo repository.Room, bookings bookingRepo.Booking, tx postgres.Transactor, otel otel.Otel) Room {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		tx:       tx,
		otel:     otel,
	}
}

// GetAll hides unavailable rooms from anonymous visitors only.
func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	if _, ok := identity.FromContext(ctx); !ok {
		filter = shared.FilterByField(model.FieldIsAvailable, true, model.TableName)
	}

	rooms, err := s.repo.GetAll(ctx, gDto.Sorted(model.FieldPrice, gDto.SortDirAsc), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms)

	return res, nil
}

func (s *serviceImpl) GetAvailable(ctx context.Context, checkIn, checkOut string) (res dto.GetAvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := bookingModel.ParseStay(checkIn, checkOut, timezone.Now())
	if err != nil {
		return res, err
	}

	rooms, err := s.repo.GetAll(ctx, gDto.Sorted(model.FieldPrice, gDto.SortDirAsc), shared.FilterByField(model.FieldIsAvailable, true, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get available rooms")

		return res, fmt.Errorf("failed to get available rooms: %w", err)
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: bookingModel.StatusCancelled, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldCheckOut, Operator: gDto.FilterOperatorGreaterEq, Value: stay.CheckIn, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings in range")

		return res, fmt.Errorf("failed to get bookings in range: %w", err)
	}

	byRoom := make(map[string][]bookingModel.Booking)
	for _, booking := range bookings {
		byRoom[booking.RoomSlug] = append(byRoom[booking.RoomSlug], booking)
	}

	nights := stay.Nights()
	res.FromStay(stay.CheckIn.Format(constant.DateFormat), stay.CheckOut.Format(constant.DateFormat), nights)

	for _, room := range rooms {
		if stay.ConflictsWith(byRoom[room.Slug]) {
			continue
		}

		res.Add(room, nights, bookingModel.TotalPrice(room.Price, nights))
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, idOrSlug string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.find(ctx, idOrSlug)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.Validate(); err != nil {
		return res, err
	}

	if err = s.ensureSlugFree(ctx, req.Slug); err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)
	room := req.ToModel(caller.UserID)

	if err = s.repo.Insert(ctx, room); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict(errSlugTaken)
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, idOrSlug string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRoomRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	if err = req.Validate(); err != nil {
		return res, err
	}

	room, err := s.find(ctx, idOrSlug)
	if err != nil {
		return res, err
	}

	if req.Slug != nil && *req.Slug != room.Slug {
		if err = s.ensureSlugFree(ctx, *req.Slug); err != nil {
			return res, err
		}
	}

	caller, _ := identity.FromContext(ctx)
	filter := shared.FilterByID(room.ID, model.FieldID, model.TableName)

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return s.updateTx(ctx, tx, req, filter, caller.UserID)
	})
	if err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict(errSlugTaken)
		}

		if failure.IsFailure(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, idOrSlug string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.find(ctx, idOrSlug)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(room.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	log.Info().Str("slug", room.Slug).Msg("room deleted")

	return nil
}

// updateTx locks the room row and applies the update. Bookings reference rooms
// by slug, so a rename carries them along in the same transaction; otherwise
// the renamed room would lose its booking history and accept overlapping stays.
func (s *serviceImpl) updateTx(ctx context.Context, tx *sqlx.Tx, req dto.UpdateRoomRequest, filter gDto.FilterGroup, username string) error {
	current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		return fmt.Errorf("failed to lock room: %w", err)
	}

	if current.ID == "" {
		return failure.NotFound(errRoomNotFound)
	}

	if err = s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, username), filter); err != nil {
		return err
	}

	if req.Slug == nil || *req.Slug == current.Slug {
		return nil
	}

	moved := map[string]any{bookingModel.FieldRoomSlug: *req.Slug}
	if err = s.bookings.UpdateTx(ctx, tx, moved, shared.FilterByField(bookingModel.FieldRoomSlug, current.Slug, bookingModel.TableName)); err != nil {
		return fmt.Errorf("failed to move bookings to the new slug: %w", err)
	}

	log.Info().Str("from", current.Slug).Str("to", *req.Slug).Msg("room renamed, bookings moved")

	return nil
}

// find looks a room up by uuid first and by slug second.
func (s *serviceImpl) find(ctx context.Context, idOrSlug string) (model.Room, error) {
	if shared.IsUUID(idOrSlug) {
		room, err := s.repo.Get(ctx, shared.FilterByID(idOrSlug, model.FieldID, model.TableName))
		if err != nil {
			return room, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID != "" {
			return room, nil
		}
	}

	room, err := s.repo.Get(ctx, shared.FilterByField(model.FieldSlug, idOrSlug, model.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == "" {
		return room, failure.NotFound(errRoomNotFound)
	}

	return room, nil
}

func (s *serviceImpl) ensureSlugFree(ctx context.Context, slug string) error {
	exists, err := s.repo.Exist(ctx, shared.FilterByField(model.FieldSlug, slug, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check room slug: %w", err)
	}

	if exists {
		return failure.Conflict(errSlugTaken)
	}

	return nil
}
