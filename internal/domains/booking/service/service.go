package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, filter dto.ListBookingsFilter) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	tx       postgres.Transactor
	events   kafka.Client
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, tx postgres.Transactor, events kafka.Client, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		tx:       tx,
		events:   events,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, stay, err := s.prepare(ctx, req)
	if err != nil {
		return res, err
	}

	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, activeForRoom(room.Slug))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room bookings")

		return res, fmt.Errorf("failed to get room bookings: %w", err)
	}

	res.FromRoom(room, stay.Nights(), !stay.ConflictsWith(existing))

	return res, nil
}

// Create re-checks for overlaps under a row lock on the room and inserts in the
// same transaction. The exclusion constraint on bookings backs this up.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, stay, err := s.prepare(ctx, req.AvailabilityRequest())
	if err != nil {
		return res, err
	}

	if !room.Fits(req.Adults, req.Children) {
		return res, model.ErrCapacity
	}

	caller, _ := identity.FromContext(ctx)

	var userID *string
	if caller.UserID != constant.Empty {
		userID = &caller.UserID
	}

	var booking model.Booking

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByField(roomModel.FieldSlug, room.Slug, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if locked.ID == constant.Empty {
			return model.ErrRoomNotFound
		}

		if !locked.IsAvailable {
			return model.ErrUnavailable
		}

		existing, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, activeForRoom(locked.Slug))
		if err != nil {
			return fmt.Errorf("failed to get room bookings: %w", err)
		}

		if stay.ConflictsWith(existing) {
			return model.ErrConflict
		}

		booking = req.ToModel(caller.UserID, userID, locked, stay)

		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		if shared.IsExclusionViolation(err) {
			return res, model.ErrConflict
		}

		if failure.IsFailure(err) {
			log.Warn().Err(err).Str("room", room.Slug).Msg("booking rejected")

			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("room", booking.RoomSlug).Msg("booking created")

	s.publish(ctx, booking, model.EventCreated)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = model.ValidateStatusChange(booking.Status, req.Status); err != nil {
		return res, err
	}

	if err = s.update(ctx, booking.ID, req); err != nil {
		return res, err
	}

	booking.Status = req.Status
	s.publish(ctx, booking, model.EventStatusChanged)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePaymentStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = model.ValidatePaymentStatus(req.PaymentStatus); err != nil {
		return res, err
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.update(ctx, booking.ID, req); err != nil {
		return res, err
	}

	booking.PaymentStatus = req.PaymentStatus
	s.publish(ctx, booking, model.EventPaymentChanged)

	res.FromModel(booking)

	return res, nil
}

// Cancel lets guests cancel their own bookings; staff and admin may cancel any.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.UnauthenticatedError
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !caller.HasRole(constant.RoleStaff, constant.RoleAdmin) && !booking.OwnedBy(caller.UserID) {
		return res, failure.Forbidden("you can only cancel your own bookings")
	}

	if booking.Status == model.StatusCancelled {
		return res, model.ErrAlreadyCancelled
	}

	if err = s.update(ctx, booking.ID, dto.UpdateStatusRequest{Status: model.StatusCancelled}); err != nil {
		return res, err
	}

	booking.Status = model.StatusCancelled
	s.publish(ctx, booking, model.EventCancelled)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListBookingsFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.GetAll(ctx, gDto.Sorted(constant.FieldCreatedAt, gDto.SortDirDesc), filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings)

	return res, nil
}

// GetMine matches bookings made while signed in or under the caller's email.
func (s *serviceImpl) GetMine(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.UnauthenticatedError
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Value: caller.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldGuestEmail, Value: shared.NormalizeEmail(caller.Email), Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	bookings, err := s.repo.GetAll(ctx, gDto.Sorted(constant.FieldCreatedAt, gDto.SortDirDesc), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get caller bookings")

		return res, fmt.Errorf("failed to get caller bookings: %w", err)
	}

	res.FromModels(bookings)

	return res, nil
}

// Get hides other people's bookings from guests behind a NotFound.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.UnauthenticatedError
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !caller.HasRole(constant.RoleStaff, constant.RoleAdmin) &&
		!booking.OwnedBy(caller.UserID) &&
		!strings.EqualFold(booking.GuestEmail, caller.Email) {
		return res, model.ErrNotFound
	}

	res.FromModel(booking)

	return res, nil
}

// prepare runs the shared validations in order: dates, then room existence,
// then room availability.
func (s *serviceImpl) prepare(ctx context.Context, req dto.CheckAvailabilityRequest) (roomModel.Room, model.Stay, error) {
	if strings.TrimSpace(req.RoomSlug) == constant.Empty {
		return roomModel.Room{}, model.Stay{}, failure.BadRequestFromString("roomSlug is required")
	}

	stay, err := model.ParseStay(req.CheckIn, req.CheckOut, timezone.Now())
	if err != nil {
		return roomModel.Room{}, stay, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByField(roomModel.FieldSlug, req.RoomSlug, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, stay, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, stay, model.ErrRoomNotFound
	}

	if !room.IsAvailable {
		return room, stay, model.ErrUnavailable
	}

	return room, stay, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	if !shared.IsUUID(id) {
		return model.Booking{}, model.ErrNotFound
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrNotFound
	}

	return booking, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, fields any) error {
	caller, _ := identity.FromContext(ctx)

	err := s.repo.Update(ctx, shared.TransformFields(fields, caller.UserID), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if shared.IsExclusionViolation(err) {
			return model.ErrConflict
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// publish never fails the request; the event outlives the request context.
func (s *serviceImpl) publish(ctx context.Context, booking model.Booking, eventType string) {
	msg := kafka.Message{Key: booking.ID, Value: booking.Event(eventType, timezone.Now())}

	if err := s.events.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.BookingTopic, msg); err != nil {
		log.Warn().Err(err).Str("event", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}

func activeForRoom(slug string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomSlug, Value: slug, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	}
}
