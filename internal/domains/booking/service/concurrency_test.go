package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/service"
	roomModel "hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
)

// serialTx models the room row lock: one transaction at a time.
type serialTx struct {
	mu sync.Mutex
}

func (s *serialTx) WithTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(nil)
}

type memoryRooms struct {
	room roomModel.Room
}

func (m *memoryRooms) Insert(context.Context, roomModel.Room) error { return nil }

func (m *memoryRooms) Get(context.Context, gDto.FilterGroup, ...string) (roomModel.Room, error) {
	return m.room, nil
}

func (m *memoryRooms) GetForUpdateTx(context.Context, *sqlx.Tx, gDto.FilterGroup, ...string) (roomModel.Room, error) {
	return m.room, nil
}

func (m *memoryRooms) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]roomModel.Room, error) {
	return []roomModel.Room{m.room}, nil
}

func (m *memoryRooms) Exist(context.Context, gDto.FilterGroup) (bool, error) { return true, nil }

func (m *memoryRooms) Update(context.Context, map[string]any, gDto.FilterGroup) error { return nil }

func (m *memoryRooms) UpdateTx(context.Context, *sqlx.Tx, map[string]any, gDto.FilterGroup) error {
	return nil
}

func (m *memoryRooms) Delete(context.Context, gDto.FilterGroup) error { return nil }

type memoryBookings struct {
	mu       sync.Mutex
	bookings []model.Booking
}

func (m *memoryBookings) InsertTx(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bookings = append(m.bookings, b)

	return nil
}

func (m *memoryBookings) Get(context.Context, gDto.FilterGroup, ...string) (model.Booking, error) {
	return model.Booking{}, nil
}

func (m *memoryBookings) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error) {
	return m.GetAllTx(ctx, nil, params, filter, columns...)
}

func (m *memoryBookings) GetAllTx(context.Context, *sqlx.Tx, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Booking(nil), m.bookings...), nil
}

func (m *memoryBookings) Update(context.Context, map[string]any, gDto.FilterGroup) error { return nil }

func (m *memoryBookings) UpdateTx(context.Context, *sqlx.Tx, map[string]any, gDto.FilterGroup) error {
	return nil
}

type discardEvents struct{}

func (discardEvents) SendMessages(context.Context, string, ...kafka.Message) error { return nil }

func (discardEvents) Close() error { return nil }

func TestBookingService_CreateConcurrentOverlaps(t *testing.T) {
	const attempts = 20

	bookings := &memoryBookings{}
	svc := service.New(bookings, &memoryRooms{room: deluxe()}, &serialTx{}, discardEvents{}, &config.Config{}, mocks.NewOtel())

	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)

	for i := range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			// Every request overlaps day 5.
			_, err := svc.Create(guestCtx(), createRequest(3+i%3, 6+i%3, 1))
			switch {
			case err == nil:
				created.Add(1)
			case assert.ErrorIs(t, err, model.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	require.Len(t, bookings.bookings, 1)
	assert.EqualValues(t, 1, created.Load())
	assert.EqualValues(t, attempts-1, conflicts.Load())
}
