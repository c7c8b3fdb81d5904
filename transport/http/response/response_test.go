package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "b-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"b-1"}}`, rec.Body.String())
}

func TestWithData(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithData(rec, http.StatusOK, "Booking cancelled", map[string]string{"status": "cancelled"})

	assert.JSONEq(t, `{"success":true,"message":"Booking cancelled","data":{"status":"cancelled"}}`, rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithMessage(rec, http.StatusOK, "Room deleted")

	assert.JSONEq(t, `{"success":true,"message":"Room deleted"}`, rec.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		err        error
		wantCode   int
		wantError  string
	}{
		{name: "failure", err: failure.NotFound("booking not found"), wantCode: http.StatusNotFound, wantError: "booking not found"},
		{name: "wrapped failure", err: fmt.Errorf("create: %w", failure.Conflict("room already booked")), wantCode: http.StatusConflict, wantError: "create: room already booked"},
		{name: "internal in development", err: errors.New("pq: connection refused"), wantCode: http.StatusInternalServerError, wantError: "pq: connection refused"},
		{name: "internal in production", production: true, err: errors.New("pq: connection refused"), wantCode: http.StatusInternalServerError, wantError: "internal server error"},
		{name: "client error in production", production: true, err: failure.BadRequestFromString("checkInDate is required"), wantCode: http.StatusBadRequest, wantError: "checkInDate is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response.SetProduction(tt.production)
			t.Cleanup(func() { response.SetProduction(false) })

			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			body := decode(t, rec)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestWithPreparingShutdown(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithPreparingShutdown(rec)

	body := decode(t, rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, body["success"])
}
