package model

import (
	"hotel/shared/timezone"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	hoursPerNight    = 24
	invoicePrefix    = "INV"
	invoiceSuffixLen = 9
)

// Stay is a validated check-in/check-out pair.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseStay validates a requested range against today. The checks run in a
// fixed order and each yields its own error.
func ParseStay(checkIn, checkOut string, now time.Time) (Stay, error) {
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return Stay{}, ErrMissingDates
	}

	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return Stay{}, ErrInvalidDate
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return Stay{}, ErrInvalidDate
	}

	if !in.Before(out) {
		return Stay{}, ErrInvalidRange
	}

	if in.Before(timezone.StartOfDay(now)) {
		return Stay{}, ErrPastDate
	}

	return Stay{CheckIn: in, CheckOut: out}, nil
}

func (s Stay) Nights() int {
	return Nights(s.CheckIn, s.CheckOut)
}

// Overlaps compares closed intervals, so a check-out on the day of another
// check-in collides.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return !aIn.After(bOut) && !aOut.Before(bIn)
}

// ConflictsWith reports whether any booking in existing overlaps the stay.
// Cancelled bookings never conflict.
func (s Stay) ConflictsWith(existing []Booking) bool {
	for _, b := range existing {
		if b.Status == StatusCancelled {
			continue
		}

		if Overlaps(b.CheckIn, b.CheckOut, s.CheckIn, s.CheckOut) {
			return true
		}
	}

	return false
}

// Nights rounds a partial day up. Both ends are read as wall-clock times in
// the check-in's zone, so a DST shift inside the stay never adds or drops a night.
func Nights(in, out time.Time) int {
	return int(math.Ceil(wallClock(out.In(in.Location())).Sub(wallClock(in)).Hours() / hoursPerNight))
}

func wallClock(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func TotalPrice(price decimal.Decimal, nights int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(nights)))
}

// ValidateStatusChange holds the lifecycle rules. Any known status may follow
// any other.
func ValidateStatusChange(_, next string) error {
	if !slices.Contains(Statuses, next) {
		return ErrInvalidStatus
	}

	return nil
}

func ValidatePaymentStatus(next string) error {
	if !slices.Contains(PaymentStatuses, next) {
		return ErrInvalidPayment
	}

	return nil
}

// NewInvoiceNumber returns INV-<unix ms>-<9 upper-case alphanumerics>.
func NewInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:invoiceSuffixLen]

	return invoicePrefix + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
