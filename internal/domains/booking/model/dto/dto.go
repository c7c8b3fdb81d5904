package dto

import (
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	queryRoom          = "room"
	queryStatus        = "status"
	queryPaymentStatus = "paymentStatus"
	queryEmail         = "email"
)

// CheckAvailabilityRequest is validated by the service so that each missing
// or malformed field yields its own error in a fixed order.
type CheckAvailabilityRequest struct {
	RoomSlug string `json:"roomSlug"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

type RoomSummary struct {
	ID    string          `json:"id"`
	Slug  string          `json:"slug"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type AvailabilityResponse struct {
	Available     bool            `json:"available"`
	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Room          RoomSummary     `json:"room"`
}

func (r *AvailabilityResponse) FromRoom(room roomModel.Room, nights int, available bool) {
	r.Available = available
	r.Nights = nights
	r.PricePerNight = room.Price
	r.TotalPrice = model.TotalPrice(room.Price, nights)
	r.Room = RoomSummary{ID: room.ID, Slug: room.Slug, Title: room.Title, Price: room.Price}
}

type GuestInfo struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone" validate:"required,max=30"`
}

type CreateBookingRequest struct {
	RoomSlug           string                    `json:"roomSlug"`
	CheckIn            string                    `json:"checkIn"`
	CheckOut           string                    `json:"checkOut"`
	Adults             int                       `json:"adults"             validate:"min=1,max=20"`
	Children           int                       `json:"children"           validate:"min=0,max=20"`
	GuestInfo          GuestInfo                 `json:"guestInfo"`
	AdditionalServices []model.AdditionalService `json:"additionalServices" validate:"omitempty,max=20,dive"`
	SpecialRequests    *string                   `json:"specialRequests"    validate:"omitempty,max=2000"`
}

func (r *CreateBookingRequest) AvailabilityRequest() CheckAvailabilityRequest {
	return CheckAvailabilityRequest{RoomSlug: r.RoomSlug, CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// ToModel snapshots the room's title and nightly price into a pending booking.
func (r *CreateBookingRequest) ToModel(username string, userID *string, room roomModel.Room, stay model.Stay) model.Booking {
	now := timezone.Now()
	nights := stay.Nights()

	services := r.AdditionalServices
	if services == nil {
		services = []model.AdditionalService{}
	}

	return model.Booking{
		ID:                 uuid.NewString(),
		RoomSlug:           room.Slug,
		RoomTitle:          room.Title,
		PricePerNight:      room.Price,
		CheckIn:            stay.CheckIn,
		CheckOut:           stay.CheckOut,
		Nights:             nights,
		Adults:             r.Adults,
		Children:           r.Children,
		TotalPrice:         model.TotalPrice(room.Price, nights),
		GuestName:          strings.TrimSpace(r.GuestInfo.Name),
		GuestEmail:         shared.NormalizeEmail(r.GuestInfo.Email),
		GuestPhone:         strings.TrimSpace(r.GuestInfo.Phone),
		AdditionalServices: gModel.NewJSON(services),
		SpecialRequests:    r.SpecialRequests,
		Status:             model.StatusPending,
		PaymentStatus:      model.PaymentPending,
		InvoiceNumber:      model.NewInvoiceNumber(now),
		UserID:             userID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `db:"payment_status" json:"paymentStatus" validate:"required"`
}

// ListBookingsFilter holds the optional list filters; empty values are ignored.
type ListBookingsFilter struct {
	Room          string
	Status        string
	PaymentStatus string
	Email         string
}

func (f *ListBookingsFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Room = strings.TrimSpace(query.Get(queryRoom))
	f.Status = strings.TrimSpace(query.Get(queryStatus))
	f.PaymentStatus = strings.TrimSpace(query.Get(queryPaymentStatus))
	f.Email = shared.NormalizeEmail(query.Get(queryEmail))
}

func (f *ListBookingsFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	add := func(field, value string) {
		if value == constant.Empty {
			return
		}

		group.Filters = append(group.Filters, gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	add(model.FieldRoomSlug, f.Room)
	add(model.FieldStatus, f.Status)
	add(model.FieldPaymentStatus, f.PaymentStatus)
	add(model.FieldGuestEmail, f.Email)

	return group
}

type BookingResponse struct {
	ID                 string                    `json:"id"`
	RoomSlug           string                    `json:"roomSlug"`
	RoomTitle          string                    `json:"roomTitle"`
	PricePerNight      decimal.Decimal           `json:"pricePerNight"`
	CheckIn            string                    `json:"checkIn"`
	CheckOut           string                    `json:"checkOut"`
	Nights             int                       `json:"nights"`
	Adults             int                       `json:"adults"`
	Children           int                       `json:"children"`
	TotalPrice         decimal.Decimal           `json:"totalPrice"`
	GuestInfo          GuestInfo                 `json:"guestInfo"`
	AdditionalServices []model.AdditionalService `json:"additionalServices"`
	SpecialRequests    *string                   `json:"specialRequests,omitempty"`
	Status             string                    `json:"status"`
	PaymentStatus      string                    `json:"paymentStatus"`
	InvoiceNumber      string                    `json:"invoiceNumber"`
	UserID             *string                   `json:"userId,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.RoomSlug = m.RoomSlug
	r.RoomTitle = m.RoomTitle
	r.PricePerNight = m.PricePerNight
	r.CheckIn = timezone.Format(m.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(m.CheckOut, constant.DateFormat)
	r.Nights = m.Nights
	r.Adults = m.Adults
	r.Children = m.Children
	r.TotalPrice = m.TotalPrice
	r.GuestInfo = GuestInfo{Name: m.GuestName, Email: m.GuestEmail, Phone: m.GuestPhone}
	r.AdditionalServices = m.AdditionalServices.V
	r.SpecialRequests = m.SpecialRequests
	r.Status = m.Status
	r.PaymentStatus = m.PaymentStatus
	r.InvoiceNumber = m.InvoiceNumber
	r.UserID = m.UserID

	if r.AdditionalServices == nil {
		r.AdditionalServices = []model.AdditionalService{}
	}

	r.Metadata.FromModel(m.Metadata)
}

type Summary struct {
	RoomTitle     string          `json:"roomTitle"`
	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	CheckIn       string          `json:"checkIn"`
	CheckOut      string          `json:"checkOut"`
}

type CreateBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Summary Summary         `json:"summary"`
}

func (r *CreateBookingResponse) FromModel(m model.Booking) {
	r.Booking.FromModel(m)
	r.Summary = Summary{
		RoomTitle:     m.RoomTitle,
		Nights:        m.Nights,
		PricePerNight: m.PricePerNight,
		TotalPrice:    m.TotalPrice,
		CheckIn:       r.Booking.CheckIn,
		CheckOut:      r.Booking.CheckOut,
	}
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.Count = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
