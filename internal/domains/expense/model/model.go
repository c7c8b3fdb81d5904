package model

import (
	"hotel/shared/failure"
	"hotel/shared/model"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "expenses"
	EntityName = "expense"

	FieldID            = "id"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldDate          = "date"
	FieldPaymentMethod = "payment_method"
	FieldStatus        = "status"
	FieldApprovedBy    = "approved_by"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	Categories = []string{
		"utilities", "maintenance", "supplies", "food-beverage", "staff-salary", "marketing",
		"cleaning", "laundry", "technology", "insurance", "taxes", "other",
	}
	PaymentMethods = []string{"cash", "card", "bank-transfer", "check", "other"}
	Statuses       = []string{StatusPending, StatusApproved, StatusRejected}
)

var (
	ErrNotFound       = &failure.Failure{Code: http.StatusNotFound, Message: "expense not found"}
	ErrNegativeAmount = &failure.Failure{Code: http.StatusBadRequest, Message: "amount must not be negative"}
	ErrInvalidDate    = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid date format"}
)

type Expense struct {
	ID            string          `db:"id"`
	Category      string          `db:"category"`
	Subcategory   *string         `db:"subcategory"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Date          time.Time       `db:"date"`
	PaymentMethod string          `db:"payment_method"`
	Vendor        *string         `db:"vendor"`
	ReceiptURL    *string         `db:"receipt_url"`
	Notes         *string         `db:"notes"`
	Status        string          `db:"status"`
	ApprovedBy    *string         `db:"approved_by"`
	model.Metadata
}

// Bucket is one row of a grouped aggregate.
type Bucket struct {
	Key   string          `db:"key"`
	Count int             `db:"count"`
	Total decimal.Decimal `db:"total"`
}

// Totals sums amounts overall and per category.
func Totals(expenses []Expense) (decimal.Decimal, map[string]decimal.Decimal) {
	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}

	for _, e := range expenses {
		total = total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	return total, byCategory
}
