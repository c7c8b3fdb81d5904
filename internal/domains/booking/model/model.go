package model

import (
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomSlug      = "room_slug"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldGuestEmail    = "guest_email"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldUserID        = "user_id"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

const (
	EventCreated        = "booking.created"
	EventStatusChanged  = "booking.status_changed"
	EventPaymentChanged = "booking.payment_changed"
	EventCancelled      = "booking.cancelled"
)

var (
	Statuses        = []string{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}
	PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentRefunded}
)

type AdditionalService struct {
	Name     string          `json:"name"     validate:"required,max=100"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"min=1"`
}

type Booking struct {
	ID                 string                          `db:"id"`
	RoomSlug           string                          `db:"room_slug"`
	RoomTitle          string                          `db:"room_title"`
	PricePerNight      decimal.Decimal                 `db:"price_per_night"`
	CheckIn            time.Time                       `db:"check_in"`
	CheckOut           time.Time                       `db:"check_out"`
	Nights             int                             `db:"nights"`
	Adults             int                             `db:"adults"`
	Children           int                             `db:"children"`
	TotalPrice         decimal.Decimal                 `db:"total_price"`
	GuestName          string                          `db:"guest_name"`
	GuestEmail         string                          `db:"guest_email"`
	GuestPhone         string                          `db:"guest_phone"`
	AdditionalServices model.JSON[[]AdditionalService] `db:"additional_services"`
	SpecialRequests    *string                         `db:"special_requests"`
	Status             string                          `db:"status"`
	PaymentStatus      string                          `db:"payment_status"`
	InvoiceNumber      string                          `db:"invoice_number"`
	UserID             *string                         `db:"user_id"`
	model.Metadata
}

// OwnedBy reports whether the booking was made by userID.
func (b Booking) OwnedBy(userID string) bool {
	return b.UserID != nil && *b.UserID == userID
}

// Event is the payload published for every lifecycle change.
type Event struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"bookingId"`
	RoomSlug      string    `json:"roomSlug"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CheckIn       time.Time `json:"checkIn"`
	CheckOut      time.Time `json:"checkOut"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (b Booking) Event(eventType string, at time.Time) Event {
	return Event{
		Type:          eventType,
		BookingID:     b.ID,
		RoomSlug:      b.RoomSlug,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		OccurredAt:    at,
	}
}
