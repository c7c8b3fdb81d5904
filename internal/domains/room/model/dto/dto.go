package dto

import (
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Slug               string                `json:"slug"               validate:"required,slug,max=100"`
	Title              string                `json:"title"              validate:"required,max=200"`
	Subtitle           string                `json:"subtitle"           validate:"omitempty,max=300"`
	Price              decimal.Decimal       `json:"price"`
	HeroImage          string                `json:"heroImage"          validate:"omitempty,url"`
	Description        []string              `json:"description"        validate:"omitempty,dive,max=5000"`
	Specs              model.Specs           `json:"specs"`
	Gallery            []string              `json:"gallery"            validate:"omitempty,dive,url"`
	Amenities          []string              `json:"amenities"          validate:"omitempty,dive,max=100"`
	Services           []string              `json:"services"           validate:"omitempty,dive,max=100"`
	IsAvailable        *bool                 `json:"isAvailable"`
	MaxAdults          *int                  `json:"maxAdults"          validate:"omitempty,min=1"`
	MaxChildren        *int                  `json:"maxChildren"        validate:"omitempty,min=0"`
	RoomNumber         *string               `json:"roomNumber"         validate:"omitempty,max=20"`
	Floor              *int                  `json:"floor"`
	HousekeepingStatus *string               `json:"housekeepingStatus" validate:"omitempty,oneof=clean dirty inspected out-of-order"`
	OccupancyStatus    *string               `json:"occupancyStatus"    validate:"omitempty,oneof=vacant occupied reserved"`
	SeasonalPrices     []model.SeasonalPrice `json:"seasonalPrices"     validate:"omitempty,dive"`
}

// Validate covers the rules struct tags cannot express on decimals.
func (r *CreateRoomRequest) Validate() error {
	if !r.Price.IsPositive() {
		return failure.BadRequestFromString("price must be greater than 0")
	}

	return validateSeasonalPrices(r.SeasonalPrices)
}

func (r *CreateRoomRequest) ToModel(username string) model.Room {
	now := timezone.Now()

	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	seasonal := r.SeasonalPrices
	if seasonal == nil {
		seasonal = []model.SeasonalPrice{}
	}

	return model.Room{
		ID:                 uuid.NewString(),
		Slug:               r.Slug,
		Title:              r.Title,
		Subtitle:           r.Subtitle,
		Price:              r.Price,
		HeroImage:          r.HeroImage,
		Description:        gModel.Strings(r.Description),
		Specs:              gModel.NewJSON(r.Specs),
		Gallery:            gModel.Strings(r.Gallery),
		Amenities:          gModel.Strings(r.Amenities),
		Services:           gModel.Strings(r.Services),
		IsAvailable:        isAvailable,
		MaxAdults:          r.MaxAdults,
		MaxChildren:        r.MaxChildren,
		RoomNumber:         r.RoomNumber,
		Floor:              r.Floor,
		HousekeepingStatus: r.HousekeepingStatus,
		OccupancyStatus:    r.OccupancyStatus,
		SeasonalPrices:     gModel.NewJSON(seasonal),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// UpdateRoomRequest is a partial update; nil fields are left untouched.
type UpdateRoomRequest struct {
	Slug               *string                             `db:"slug"                json:"slug"               validate:"omitempty,slug,max=100"`
	Title              *string                             `db:"title"               json:"title"              validate:"omitempty,min=1,max=200"`
	Subtitle           *string                             `db:"subtitle"            json:"subtitle"           validate:"omitempty,max=300"`
	Price              *decimal.Decimal                    `db:"price"               json:"price"`
	HeroImage          *string                             `db:"hero_image"          json:"heroImage"          validate:"omitempty,url"`
	Description        *pq.StringArray                     `db:"description"         json:"description"        validate:"omitempty,dive,max=5000"`
	Specs              *gModel.JSON[model.Specs]           `db:"specs"               json:"specs"`
	Gallery            *pq.StringArray                     `db:"gallery"             json:"gallery"            validate:"omitempty,dive,url"`
	Amenities          *pq.StringArray                     `db:"amenities"           json:"amenities"          validate:"omitempty,dive,max=100"`
	Services           *pq.StringArray                     `db:"services"            json:"services"           validate:"omitempty,dive,max=100"`
	IsAvailable        *bool                               `db:"is_available"        json:"isAvailable"`
	MaxAdults          *int                                `db:"max_adults"          json:"maxAdults"          validate:"omitempty,min=1"`
	MaxChildren        *int                                `db:"max_children"        json:"maxChildren"        validate:"omitempty,min=0"`
	RoomNumber         *string                             `db:"room_number"         json:"roomNumber"         validate:"omitempty,max=20"`
	Floor              *int                                `db:"floor"               json:"floor"`
	HousekeepingStatus *string                             `db:"housekeeping_status" json:"housekeepingStatus" validate:"omitempty,oneof=clean dirty inspected out-of-order"`
	OccupancyStatus    *string                             `db:"occupancy_status"    json:"occupancyStatus"    validate:"omitempty,oneof=vacant occupied reserved"`
	SeasonalPrices     *gModel.JSON[[]model.SeasonalPrice] `db:"seasonal_prices"     json:"seasonalPrices"`
}

func (r *UpdateRoomRequest) Validate() error {
	if r.Price != nil && !r.Price.IsPositive() {
		return failure.BadRequestFromString("price must be greater than 0")
	}

	if r.SeasonalPrices != nil {
		return validateSeasonalPrices(r.SeasonalPrices.V)
	}

	return nil
}

func validateSeasonalPrices(prices []model.SeasonalPrice) error {
	for _, price := range prices {
		if err := validator.ValidateStruct(&price); err != nil {
			return err
		}

		if price.Price.IsNegative() {
			return failure.BadRequestFromString("seasonal price cannot be negative")
		}

		start, _ := timezone.ParseDate(price.StartDate)
		end, _ := timezone.ParseDate(price.EndDate)

		if end.Before(start) {
			return failure.BadRequestFromString("seasonal price ends before it starts")
		}
	}

	return nil
}

type RoomResponse struct {
	ID                 string                `json:"id"`
	Slug               string                `json:"slug"`
	Title              string                `json:"title"`
	Subtitle           string                `json:"subtitle"`
	Price              decimal.Decimal       `json:"price"`
	HeroImage          string                `json:"heroImage"`
	Description        []string              `json:"description"`
	Specs              model.Specs           `json:"specs"`
	Gallery            []string              `json:"gallery"`
	Amenities          []string              `json:"amenities"`
	Services           []string              `json:"services"`
	IsAvailable        bool                  `json:"isAvailable"`
	MaxAdults          *int                  `json:"maxAdults,omitempty"`
	MaxChildren        *int                  `json:"maxChildren,omitempty"`
	RoomNumber         *string               `json:"roomNumber,omitempty"`
	Floor              *int                  `json:"floor,omitempty"`
	HousekeepingStatus *string               `json:"housekeepingStatus,omitempty"`
	OccupancyStatus    *string               `json:"occupancyStatus,omitempty"`
	SeasonalPrices     []model.SeasonalPrice `json:"seasonalPrices"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.Slug = m.Slug
	r.Title = m.Title
	r.Subtitle = m.Subtitle
	r.Price = m.Price
	r.HeroImage = m.HeroImage
	r.Description = gModel.Strings(m.Description)
	r.Specs = m.Specs.V
	r.Gallery = gModel.Strings(m.Gallery)
	r.Amenities = gModel.Strings(m.Amenities)
	r.Services = gModel.Strings(m.Services)
	r.IsAvailable = m.IsAvailable
	r.MaxAdults = m.MaxAdults
	r.MaxChildren = m.MaxChildren
	r.RoomNumber = m.RoomNumber
	r.Floor = m.Floor
	r.HousekeepingStatus = m.HousekeepingStatus
	r.OccupancyStatus = m.OccupancyStatus
	r.SeasonalPrices = m.SeasonalPrices.V

	if r.SeasonalPrices == nil {
		r.SeasonalPrices = []model.SeasonalPrice{}
	}

	r.Metadata.FromModel(m.Metadata)
}

type GetRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Count int            `json:"count"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.Count = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type AvailableRoomResponse struct {
	RoomResponse
	Nights     int             `json:"nights"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type GetAvailableRoomsResponse struct {
	Rooms    []AvailableRoomResponse `json:"rooms"`
	Count    int                     `json:"count"`
	CheckIn  string                  `json:"checkIn"`
	CheckOut string                  `json:"checkOut"`
	Nights   int                     `json:"nights"`
}

func (r *GetAvailableRoomsResponse) FromStay(checkIn, checkOut string, nights int) {
	r.CheckIn = checkIn
	r.CheckOut = checkOut
	r.Nights = nights
	r.Rooms = []AvailableRoomResponse{}
}

func (r *GetAvailableRoomsResponse) Add(m model.Room, nights int, total decimal.Decimal) {
	room := AvailableRoomResponse{Nights: nights, TotalPrice: total}
	room.FromModel(m)

	r.Rooms = append(r.Rooms, room)
	r.Count = len(r.Rooms)
}
