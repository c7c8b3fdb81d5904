package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	pgMocks "hotel/infras/postgres/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"
)

const (
	topic     = "hotel.bookings"
	guestID   = "11111111-1111-4111-8111-111111111111"
	bookingID = "22222222-2222-4222-8222-222222222222"
	roomID    = "33333333-3333-4333-8333-333333333333"
)

func ptr[T any](v T) *T {
	return &v
}

func daysFromToday(n int) time.Time {
	return timezone.StartOfDay(timezone.Now()).AddDate(0, 0, n)
}

func date(n int) string {
	return daysFromToday(n).Format(time.DateOnly)
}

func guestCtx() context.Context {
	return identity.WithContext(context.Background(), identity.Identity{UserID: guestID, Email: "guest@hotel.com", Role: constant.RoleGuest})
}

func staffCtx() context.Context {
	return identity.WithContext(context.Background(), identity.Identity{UserID: "44444444-4444-4444-8444-444444444444", Role: constant.RoleStaff})
}

func deluxe() roomModel.Room {
	return roomModel.Room{ID: roomID, Slug: "deluxe-room", Title: "Deluxe Room", Price: decimal.NewFromInt(249), IsAvailable: true, MaxAdults: ptr(2), MaxChildren: ptr(1)}
}

func booked(in, out int, status string) model.Booking {
	return model.Booking{ID: bookingID, RoomSlug: "deluxe-room", CheckIn: daysFromToday(in), CheckOut: daysFromToday(out), Status: status}
}

type fixture struct {
	bookings *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	tx       *pgMocks.MockTransactor
	events   *kafkaMocks.MockClient
	svc      service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		tx:       pgMocks.NewMockTransactor(ctrl),
		events:   kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Kafka.BookingTopic = topic

	f.svc = service.New(f.bookings, f.rooms, f.tx, f.events, cfg, mocks.NewOtel())

	return f
}

func (f fixture) runTx() {
	f.tx.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func TestBookingService_CheckAvailability(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.CheckAvailabilityRequest
		setupMock     func(f fixture)
		wantErr       error
		wantCode      int
		wantAvailable bool
		wantNights    int
		wantTotal     int64
	}{
		{
			name:      "missing room",
			req:       dto.CheckAvailabilityRequest{CheckIn: date(3), CheckOut: date(5)},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing dates",
			req:       dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room"},
			setupMock: func(fixture) {},
			wantErr:   model.ErrMissingDates,
		},
		{
			name:      "invalid range",
			req:       dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(5), CheckOut: date(5)},
			setupMock: func(fixture) {},
			wantErr:   model.ErrInvalidRange,
		},
		{
			name:      "past date",
			req:       dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(-2), CheckOut: date(1)},
			setupMock: func(fixture) {},
			wantErr:   model.ErrPastDate,
		},
		{
			name: "room not found",
			req:  dto.CheckAvailabilityRequest{RoomSlug: "penthouse", CheckIn: date(3), CheckOut: date(5)},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantErr: model.ErrRoomNotFound,
		},
		{
			name: "room unavailable",
			req:  dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(3), CheckOut: date(5)},
			setupMock: func(f fixture) {
				room := deluxe()
				room.IsAvailable = false
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantErr: model.ErrUnavailable,
		},
		{
			name: "free range",
			req:  dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(3), CheckOut: date(5)},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						require.Len(t, filter.Filters, 2)

						return []model.Booking{booked(6, 8, model.StatusConfirmed)}, nil
					})
			},
			wantAvailable: true,
			wantNights:    2,
			wantTotal:     498,
		},
		{
			name: "three nights at 249",
			req:  dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(10), CheckOut: date(13)},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booked(3, 5, model.StatusConfirmed)}, nil)
			},
			wantAvailable: true,
			wantNights:    3,
			wantTotal:     747,
		},
		{
			name: "partial overlap is a conflict",
			req:  dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(12), CheckOut: date(15)},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booked(10, 13, model.StatusPending)}, nil)
			},
			wantAvailable: false,
			wantNights:    3,
			wantTotal:     747,
		},
		{
			name: "cancelled overlap is ignored",
			req:  dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(12), CheckOut: date(15)},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booked(10, 13, model.StatusCancelled)}, nil)
			},
			wantAvailable: true,
			wantNights:    3,
			wantTotal:     747,
		},
		{
			name: "same-day turnover is a conflict",
			req:  dto.CheckAvailabilityRequest{RoomSlug: "deluxe-room", CheckIn: date(5), CheckOut: date(7)},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booked(3, 5, model.StatusConfirmed)}, nil)
			},
			wantAvailable: false,
			wantNights:    2,
			wantTotal:     498,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CheckAvailability(context.Background(), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantAvailable, res.Available)
				assert.Equal(t, tt.wantNights, res.Nights)
				assert.True(t, decimal.NewFromInt(tt.wantTotal).Equal(res.TotalPrice), res.TotalPrice.String())
				assert.Equal(t, "deluxe-room", res.Room.Slug)
			}
		})
	}
}

func createRequest(in, out, adults int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomSlug:  "deluxe-room",
		CheckIn:   date(in),
		CheckOut:  date(out),
		Adults:    adults,
		GuestInfo: dto.GuestInfo{Name: "Ana", Email: "  Ana@Example.COM ", Phone: "+30 1234"},
	}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "creates a pending booking",
			req:  createRequest(3, 6, 2),
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.runTx()
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booked(3, 6, model.StatusCancelled)}, nil)
				f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
					assert.Equal(t, model.StatusPending, b.Status)
					assert.Equal(t, model.PaymentPending, b.PaymentStatus)
					assert.Equal(t, "Deluxe Room", b.RoomTitle)
					assert.True(t, decimal.NewFromInt(249).Equal(b.PricePerNight))
					assert.Equal(t, 3, b.Nights)
					assert.True(t, decimal.NewFromInt(747).Equal(b.TotalPrice))
					assert.Equal(t, "ana@example.com", b.GuestEmail)
					assert.True(t, b.OwnedBy(guestID))
					assert.Regexp(t, `^INV-\d+-[A-Z0-9]{9}$`, b.InvoiceNumber)

					return nil
				})
				f.events.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
					require.Len(t, msgs, 1)
					event, ok := msgs[0].Value.(model.Event)
					require.True(t, ok)
					assert.Equal(t, model.EventCreated, event.Type)

					return nil
				})
			},
		},
		{
			name: "overlap found at re-check",
			req:  createRequest(3, 6, 2),
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.runTx()
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booked(6, 9, model.StatusPending)}, nil)
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "exclusion constraint violation",
			req:  createRequest(3, 6, 2),
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.runTx()
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeExclusionViolation})
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "room made unavailable before the lock",
			req:  createRequest(3, 6, 2),
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.runTx()
				room := deluxe()
				room.IsAvailable = false
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantErr: model.ErrUnavailable,
		},
		{
			name: "too many adults",
			req:  createRequest(3, 6, 3),
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
			},
			wantErr: model.ErrCapacity,
		},
		{
			name:      "past date",
			req:       createRequest(-1, 2, 2),
			setupMock: func(fixture) {},
			wantErr:   model.ErrPastDate,
		},
		{
			name: "store failure",
			req:  createRequest(3, 6, 2),
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.runTx()
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, errors.New("deadlock"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "publish failure does not fail the booking",
			req:  createRequest(3, 6, 2),
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.runTx()
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.events.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).Return(errors.New("broker down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(guestCtx(), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, "Deluxe Room", res.Summary.RoomTitle)
				assert.Equal(t, 3, res.Summary.Nights)
				assert.True(t, decimal.NewFromInt(747).Equal(res.Summary.TotalPrice))
				assert.Equal(t, res.Booking.CheckIn, res.Summary.CheckIn)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		req       dto.UpdateStatusRequest
		setupMock func(f fixture)
		wantErr   error
	}{
		{
			name:      "non-uuid id",
			id:        "abc",
			req:       dto.UpdateStatusRequest{Status: model.StatusConfirmed},
			setupMock: func(fixture) {},
			wantErr:   model.ErrNotFound,
		},
		{
			name: "unknown status",
			id:   bookingID,
			req:  dto.UpdateStatusRequest{Status: "archived"},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booked(3, 5, model.StatusPending), nil)
			},
			wantErr: model.ErrInvalidStatus,
		},
		{
			name: "any known status is reachable",
			id:   bookingID,
			req:  dto.UpdateStatusRequest{Status: model.StatusPending},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booked(3, 5, model.StatusCheckedOut), nil)
				f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.StatusPending, fields[model.FieldStatus])

					return nil
				})
				f.events.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.UpdateStatus(staffCtx(), tt.id, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.Status, res.Status)
		})
	}
}

func TestBookingService_UpdatePaymentStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdatePaymentStatus(staffCtx(), bookingID, dto.UpdatePaymentStatusRequest{PaymentStatus: "partial"})
	assert.ErrorIs(t, err, model.ErrInvalidPayment)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booked(3, 5, model.StatusConfirmed), nil)
	f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).Return(nil)

	res, err := f.svc.UpdatePaymentStatus(staffCtx(), bookingID, dto.UpdatePaymentStatusRequest{PaymentStatus: model.PaymentPaid})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, res.PaymentStatus)
}

func TestBookingService_Cancel(t *testing.T) {
	own := booked(3, 5, model.StatusConfirmed)
	own.UserID = ptr(guestID)

	other := booked(3, 5, model.StatusConfirmed)
	other.UserID = ptr("55555555-5555-4555-8555-555555555555")

	cancelled := own
	cancelled.Status = model.StatusCancelled

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "guest cancels own booking",
			ctx:  guestCtx(),
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(own, nil)
				f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.events.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).Return(nil)
			},
		},
		{
			name: "guest cannot cancel someone else's booking",
			ctx:  guestCtx(),
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(other, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "staff cancels any booking",
			ctx:  staffCtx(),
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(other, nil)
				f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.events.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).Return(nil)
			},
		},
		{
			name: "already cancelled",
			ctx:  guestCtx(),
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
			},
			wantErr: model.ErrAlreadyCancelled,
		},
		{
			name:      "anonymous",
			ctx:       context.Background(),
			setupMock: func(fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Cancel(tt.ctx, bookingID)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, model.StatusCancelled, res.Status)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	byEmail := booked(3, 5, model.StatusPending)
	byEmail.GuestEmail = "guest@hotel.com"

	stranger := booked(3, 5, model.StatusPending)
	stranger.GuestEmail = "someone@else.com"

	t.Run("guest sees a booking made under their email", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(byEmail, nil)

		res, err := f.svc.Get(guestCtx(), bookingID)
		require.NoError(t, err)
		assert.Equal(t, bookingID, res.ID)
	})

	t.Run("guest cannot see other bookings", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stranger, nil)

		_, err := f.svc.Get(guestCtx(), bookingID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("staff sees any booking", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stranger, nil)

		_, err := f.svc.Get(staffCtx(), bookingID)
		require.NoError(t, err)
	})
}

func TestBookingService_GetAllAndMine(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)
			assert.Len(t, filter.Filters, 2)

			return []model.Booking{booked(3, 5, model.StatusPending)}, nil
		})

	res, err := f.svc.GetAll(staffCtx(), dto.ListBookingsFilter{Status: model.StatusPending, Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, gDto.FilterGroupOperatorOr, filter.Operator)

			return []model.Booking{}, nil
		})

	mine, err := f.svc.GetMine(guestCtx())
	require.NoError(t, err)
	assert.Equal(t, 0, mine.Count)
	assert.NotNil(t, mine.Bookings)
}
