package model

import (
	"hotel/shared/model"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "contact_settings"
	EntityName = "contact settings"

	FieldID           = "id"
	FieldSingletonKey = "singleton_key"

	SingletonKey = "default"
)

const (
	defaultPhone = "+30 228 601 2345"
	defaultEmail = "concierge@hotelbeach.com"
)

type Location struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type ServiceHours struct {
	FrontDesk   string `json:"frontDesk"`
	RoomService string `json:"roomService"`
	Concierge   string `json:"concierge"`
	Spa         string `json:"spa"`
	Restaurant  string `json:"restaurant"`
}

// ContactSettings is a single row keyed by SingletonKey.
type ContactSettings struct {
	ID               string                   `db:"id"`
	SingletonKey     string                   `db:"singleton_key"`
	Phone            string                   `db:"phone"`
	Email            string                   `db:"email"`
	Location         model.JSON[Location]     `db:"location"`
	ServiceHours     model.JSON[ServiceHours] `db:"service_hours"`
	EmergencyHotline string                   `db:"emergency_hotline"`
	model.Metadata
}

func Defaults(username string, now time.Time) ContactSettings {
	return ContactSettings{
		ID:           uuid.NewString(),
		SingletonKey: SingletonKey,
		Phone:        defaultPhone,
		Email:        defaultEmail,
		Location: model.NewJSON(Location{
			Address:    "Perissa Beach",
			City:       "Santorini",
			Country:    "Greece",
			PostalCode: "84703",
		}),
		ServiceHours: model.NewJSON(ServiceHours{
			FrontDesk:   "24/7",
			RoomService: "24/7",
			Concierge:   "7am - 11pm",
			Spa:         "9am - 8pm",
			Restaurant:  "7am - 10pm",
		}),
		EmergencyHotline: defaultPhone,
		Metadata: model.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}
