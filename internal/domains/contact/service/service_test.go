package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	contactMocks "hotel/internal/domains/contact/mocks"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/identity"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

func stored() model.ContactSettings {
	return model.Defaults(constant.ContextSystem, timezone.Now())
}

func TestContactService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *contactMocks.MockContact)
		wantErr   bool
	}{
		{
			name: "creates defaults on first read",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any(), []string{model.FieldSingletonKey}).
					DoAndReturn(func(_ context.Context, m model.ContactSettings, _ []string, _ ...string) error {
						assert.Equal(t, model.SingletonKey, m.SingletonKey)
						assert.Equal(t, m.Phone, m.EmergencyHotline)

						return nil
					})
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil)
			},
		},
		{
			name: "upsert failure",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name: "row vanished",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ContactSettings{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := contactMocks.NewMockContact(gomock.NewController(t))
			tt.setupMock(repo)

			res, err := service.New(repo, mocks.NewOtel()).Get(context.Background())
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "+30 228 601 2345", res.Phone)
			assert.Equal(t, "Santorini", res.Location.City)
			assert.Equal(t, "24/7", res.ServiceHours.FrontDesk)
		})
	}
}

func TestContactService_Update(t *testing.T) {
	repo := contactMocks.NewMockContact(gomock.NewController(t))

	location := gModel.NewJSON(model.Location{Address: "Kamari", City: "Santorini", Country: "Greece", PostalCode: "84700"})
	req := dto.UpdateContactSettingsRequest{Email: " Desk@Hotel.com ", Location: &location}

	updated := stored()
	updated.Email = "desk@hotel.com"
	updated.Location = location

	repo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Equal(t, "desk@hotel.com", fields["email"])
			assert.Equal(t, &location, fields["location"])
			assert.NotContains(t, fields, "phone")
			assert.NotContains(t, fields, "service_hours")
			assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
			assert.Len(t, filter.Filters, 1)

			return nil
		})
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)

	ctx := identity.WithContext(context.Background(), identity.Identity{UserID: "admin-1", Role: constant.RoleAdmin})

	res, err := service.New(repo, mocks.NewOtel()).Update(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "desk@hotel.com", res.Email)
	assert.Equal(t, "Kamari", res.Location.Address)
	assert.Equal(t, "+30 228 601 2345", res.Phone)
}
