package room_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/room/model/dto"
	serviceMocks "hotel/internal/domains/room/service/mocks"
	"hotel/internal/handlers/room"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/transport/http/response"
)


type stubAuth struct {
	role string
}

func (s stubAuth) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.role == "" {
			response.WithError(w, failure.UnauthenticatedError)

			return
		}

		ctx := identity.WithContext(r.Context(), identity.Identity{UserID: "u-1", Role: s.role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s stubAuth) OptionalAuth(next http.Handler) http.Handler {
	return next
}

func (s stubAuth) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, _ := identity.FromContext(r.Context())
			if !caller.HasRole(roles...) {
				response.WithError(w, failure.ForbiddenError)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func TestHandler_Routes(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		method    string
		path      string
		body      string
		setupMock func(svc *serviceMocks.MockRoom)
		wantCode  int
	}{
		{
			name:   "anonymous list",
			method: http.MethodGet,
			path:   "/rooms",
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().GetAll(gomock.Any()).Return(dto.GetRoomsResponse{Rooms: []dto.RoomResponse{}}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "available is not taken for an id",
			method: http.MethodGet,
			path:   "/rooms/available?checkIn=2030-03-01&checkOut=2030-03-04",
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().GetAvailable(gomock.Any(), "2030-03-01", "2030-03-04").Return(dto.GetAvailableRoomsResponse{}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "available with a bad range",
			method: http.MethodGet,
			path:   "/rooms/available?checkIn=2030-03-04&checkOut=2030-03-01",
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().GetAvailable(gomock.Any(), "2030-03-04", "2030-03-01").
					Return(dto.GetAvailableRoomsResponse{}, failure.BadRequestFromString("check-out must be after check-in"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "get by slug",
			method: http.MethodGet,
			path:   "/rooms/deluxe-room",
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Get(gomock.Any(), "deluxe-room").Return(dto.RoomResponse{Slug: "deluxe-room"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "get missing",
			method: http.MethodGet,
			path:   "/rooms/nowhere",
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Get(gomock.Any(), "nowhere").Return(dto.RoomResponse{}, failure.NotFound("room not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "create needs a token",
			method:    http.MethodPost,
			path:      "/rooms",
			body:      `{"slug":"garden-room","title":"Garden Room","price":"150"}`,
			setupMock: func(*serviceMocks.MockRoom) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "staff cannot create",
			role:      "staff",
			method:    http.MethodPost,
			path:      "/rooms",
			body:      `{"slug":"garden-room","title":"Garden Room","price":"150"}`,
			setupMock: func(*serviceMocks.MockRoom) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:   "admin creates",
			role:   "admin",
			method: http.MethodPost,
			path:   "/rooms",
			body:   `{"slug":"garden-room","title":"Garden Room","price":"150"}`,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
					assert.Equal(t, "garden-room", req.Slug)
					assert.True(t, decimal.NewFromInt(150).Equal(req.Price))

					return dto.RoomResponse{Slug: req.Slug}, nil
				})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "create rejects a bad slug",
			role:      "admin",
			method:    http.MethodPost,
			path:      "/rooms",
			body:      `{"slug":"Garden Room","title":"Garden Room","price":"150"}`,
			setupMock: func(*serviceMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "slug taken",
			role:   "admin",
			method: http.MethodPut,
			path:   "/rooms/garden-room",
			body:   `{"slug":"deluxe-room"}`,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Update(gomock.Any(), gomock.Any(), "garden-room").Return(dto.RoomResponse{}, failure.Conflict("slug already exists"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "delete",
			role:   "admin",
			method: http.MethodDelete,
			path:   "/rooms/garden-room",
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Delete(gomock.Any(), "garden-room").Return(nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceMocks.NewMockRoom(gomock.NewController(t))
			tt.setupMock(svc)

			handler := room.New(svc, stubAuth{role: tt.role}, mocks.NewOtel())

			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			var envelope response.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode < http.StatusBadRequest, envelope.Success)
		})
	}
}
