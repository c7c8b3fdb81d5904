package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldSlug        = "slug"
	FieldTitle       = "title"
	FieldPrice       = "price"
	FieldIsAvailable = "is_available"
)

type Specs struct {
	Bed      string `json:"bed"      validate:"omitempty,max=100"`
	Capacity int    `json:"capacity" validate:"omitempty,min=0"`
	Size     string `json:"size"     validate:"omitempty,max=50"`
	View     string `json:"view"     validate:"omitempty,max=100"`
}

type SeasonalPrice struct {
	Name      string          `json:"name"      validate:"required,max=100"`
	StartDate string          `json:"startDate" validate:"required,dateonly"`
	EndDate   string          `json:"endDate"   validate:"required,dateonly"`
	Price     decimal.Decimal `json:"price"`
}

type Room struct {
	ID                 string                      `db:"id"`
	Slug               string                      `db:"slug"`
	Title              string                      `db:"title"`
	Subtitle           string                      `db:"subtitle"`
	Price              decimal.Decimal             `db:"price"`
	HeroImage          string                      `db:"hero_image"`
	Description        pq.StringArray              `db:"description"`
	Specs              model.JSON[Specs]           `db:"specs"`
	Gallery            pq.StringArray              `db:"gallery"`
	Amenities          pq.StringArray              `db:"amenities"`
	Services           pq.StringArray              `db:"services"`
	IsAvailable        bool                        `db:"is_available"`
	MaxAdults          *int                        `db:"max_adults"`
	MaxChildren        *int                        `db:"max_children"`
	RoomNumber         *string                     `db:"room_number"`
	Floor              *int                        `db:"floor"`
	HousekeepingStatus *string                     `db:"housekeeping_status"`
	OccupancyStatus    *string                     `db:"occupancy_status"`
	SeasonalPrices     model.JSON[[]SeasonalPrice] `db:"seasonal_prices"`
	model.Metadata
}

// Fits reports whether the party stays within the room's known limits.
func (r Room) Fits(adults, children int) bool {
	if r.MaxAdults != nil && adults > *r.MaxAdults {
		return false
	}

	if r.MaxChildren != nil && children > *r.MaxChildren {
		return false
	}

	return true
}
