package otel_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"hotel/infras/otel"
	"hotel/shared/failure"
)

func recordSpan(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func attr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvent  string
	}{
		{
			name:       "server error marks the span",
			err:        errors.New("connection reset"),
			wantStatus: codes.Error,
			wantEvent:  "exception",
		},
		{
			name:       "wrapped server failure marks the span",
			err:        fmt.Errorf("failed to create booking: %w", failure.InternalError(errors.New("tx aborted"))),
			wantStatus: codes.Error,
			wantEvent:  "exception",
		},
		{
			name:       "client failure only leaves an event",
			err:        failure.Conflict("room is already booked for the selected dates"),
			wantStatus: codes.Unset,
			wantEvent:  "client failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := recordSpan(t, func(scope otel.Scope) {
				scope.TraceIfError(tt.err)
			})

			assert.Equal(t, tt.wantStatus, span.Status().Code)
			require.NotEmpty(t, span.Events())
			assert.Equal(t, tt.wantEvent, span.Events()[0].Name)
		})
	}
}

func TestScope_TraceIfErrorNil(t *testing.T) {
	span := recordSpan(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Empty(t, span.Events())
}

func TestScope_SetAttributes(t *testing.T) {
	checkIn := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	span := recordSpan(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"room.slug":      "deluxe-room",
			"booking.nights": 3,
			"booking.total":  decimal.RequireFromString("747"),
			"booking.in":     checkIn,
			"room.tags":      []string{"sea", "king"},
			"room.available": true,
		})
	})

	total, ok := attr(span, "booking.total")
	require.True(t, ok)
	assert.Equal(t, "747.00", total.AsString())

	in, ok := attr(span, "booking.in")
	require.True(t, ok)
	assert.Equal(t, "2026-03-01T14:00:00Z", in.AsString())

	nights, ok := attr(span, "booking.nights")
	require.True(t, ok)
	assert.Equal(t, int64(3), nights.AsInt64())

	tags, ok := attr(span, "room.tags")
	require.True(t, ok)
	assert.Equal(t, []string{"sea", "king"}, tags.AsStringSlice())
}
