package dto

import (
	"hotel/internal/domains/expense/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	queryCategory  = "category"
	queryStatus    = "status"
	queryStartDate = "startDate"
	queryEndDate   = "endDate"

	argStartDate = "start_date"
	argEndDate   = "end_date"

	defaultPaymentMethod = "cash"
)

type CreateExpenseRequest struct {
	Category      string          `json:"category"      validate:"required,oneof=utilities maintenance supplies food-beverage staff-salary marketing cleaning laundry technology insurance taxes other"`
	Subcategory   *string         `json:"subcategory"   validate:"omitempty,max=100"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"   validate:"required,max=1000"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=cash card bank-transfer check other"`
	Vendor        *string         `json:"vendor"        validate:"omitempty,max=200"`
	ReceiptURL    *string         `json:"receiptUrl"    validate:"omitempty,url"`
	Notes         *string         `json:"notes"         validate:"omitempty,max=2000"`
}

// Validate checks the amount and resolves the expense date, defaulting to today.
func (r *CreateExpenseRequest) Validate() (time.Time, error) {
	if r.Amount.IsNegative() {
		return time.Time{}, model.ErrNegativeAmount
	}

	if strings.TrimSpace(r.Date) == constant.Empty {
		return timezone.StartOfDay(timezone.Now()), nil
	}

	date, err := timezone.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, model.ErrInvalidDate
	}

	return date, nil
}

func (r *CreateExpenseRequest) ToModel(userID string, date time.Time) model.Expense {
	now := timezone.Now()

	method := r.PaymentMethod
	if method == constant.Empty {
		method = defaultPaymentMethod
	}

	return model.Expense{
		ID:            uuid.NewString(),
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Amount:        r.Amount,
		Description:   strings.TrimSpace(r.Description),
		Date:          date,
		PaymentMethod: method,
		Vendor:        r.Vendor,
		ReceiptURL:    r.ReceiptURL,
		Notes:         r.Notes,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

// UpdateExpenseRequest changes only the fields that are present. Date is
// parsed by the service.
type UpdateExpenseRequest struct {
	Category      *string          `db:"category"       json:"category"      validate:"omitempty,oneof=utilities maintenance supplies food-beverage staff-salary marketing cleaning laundry technology insurance taxes other"`
	Subcategory   *string          `db:"subcategory"    json:"subcategory"   validate:"omitempty,max=100"`
	Amount        *decimal.Decimal `db:"amount"         json:"amount"`
	Description   *string          `db:"description"    json:"description"   validate:"omitempty,max=1000"`
	Date          string           `db:"-"              json:"date"`
	PaymentMethod *string          `db:"payment_method" json:"paymentMethod" validate:"omitempty,oneof=cash card bank-transfer check other"`
	Vendor        *string          `db:"vendor"         json:"vendor"        validate:"omitempty,max=200"`
	ReceiptURL    *string          `db:"receipt_url"    json:"receiptUrl"    validate:"omitempty,url"`
	Notes         *string          `db:"notes"          json:"notes"         validate:"omitempty,max=2000"`
	Status        *string          `db:"status"         json:"status"        validate:"omitempty,oneof=pending approved rejected"`
}

// Decides reports whether the update approves or rejects the expense.
func (r *UpdateExpenseRequest) Decides() bool {
	return r.Status != nil && *r.Status != model.StatusPending
}

// ListExpensesFilter holds the optional list filters. Date bounds are inclusive.
type ListExpensesFilter struct {
	Category  string
	Status    string
	StartDate string
	EndDate   string
}

func (f *ListExpensesFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Category = strings.TrimSpace(query.Get(queryCategory))
	f.Status = strings.TrimSpace(query.Get(queryStatus))
	f.StartDate = strings.TrimSpace(query.Get(queryStartDate))
	f.EndDate = strings.TrimSpace(query.Get(queryEndDate))
}

func (f *ListExpensesFilter) ToFilterGroup() (gDto.FilterGroup, error) {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Category != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldCategory, Value: f.Category, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Status != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	bounds := []struct {
		value, arg, operator string
	}{
		{f.StartDate, argStartDate, gDto.FilterOperatorGreaterEq},
		{f.EndDate, argEndDate, gDto.FilterOperatorLessEq},
	}

	for _, bound := range bounds {
		if bound.value == constant.Empty {
			continue
		}

		date, err := timezone.ParseDate(bound.value)
		if err != nil {
			return group, model.ErrInvalidDate
		}

		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  bound.arg,
			Field:    model.FieldDate,
			Value:    date,
			Operator: bound.operator,
			Table:    model.TableName,
		})
	}

	return group, nil
}

type ExpenseResponse struct {
	ID            string          `json:"id"`
	Category      string          `json:"category"`
	Subcategory   *string         `json:"subcategory,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	Vendor        *string         `json:"vendor,omitempty"`
	ReceiptURL    *string         `json:"receiptUrl,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Status        string          `json:"status"`
	ApprovedBy    *string         `json:"approvedBy,omitempty"`
	gDto.Metadata
}

func (r *ExpenseResponse) FromModel(m model.Expense) {
	r.ID = m.ID
	r.Category = m.Category
	r.Subcategory = m.Subcategory
	r.Amount = m.Amount
	r.Description = m.Description
	r.Date = timezone.Format(m.Date, constant.DateFormat)
	r.PaymentMethod = m.PaymentMethod
	r.Vendor = m.Vendor
	r.ReceiptURL = m.ReceiptURL
	r.Notes = m.Notes
	r.Status = m.Status
	r.ApprovedBy = m.ApprovedBy
	r.Metadata.FromModel(m.Metadata)
}

type GetExpensesResponse struct {
	Expenses   []ExpenseResponse          `json:"expenses"`
	Count      int                        `json:"count"`
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
}

func (r *GetExpensesResponse) FromModels(models []model.Expense) {
	r.Count = len(models)
	r.Total, r.ByCategory = model.Totals(models)

	r.Expenses = make([]ExpenseResponse, len(models))
	for i, m := range models {
		r.Expenses[i].FromModel(m)
	}
}

type StatsResponse struct {
	Total           decimal.Decimal            `json:"total"`
	Count           int                        `json:"count"`
	ByCategory      map[string]decimal.Decimal `json:"byCategory"`
	ByStatus        map[string]int             `json:"byStatus"`
	ByPaymentMethod map[string]decimal.Decimal `json:"byPaymentMethod"`
}

// FromBuckets derives the overall total and count from the category buckets,
// which partition every matching row.
func (r *StatsResponse) FromBuckets(byCategory, byStatus, byPaymentMethod []model.Bucket) {
	r.Total = decimal.Zero
	r.ByCategory = make(map[string]decimal.Decimal, len(byCategory))
	r.ByStatus = make(map[string]int, len(byStatus))
	r.ByPaymentMethod = make(map[string]decimal.Decimal, len(byPaymentMethod))

	for _, b := range byCategory {
		r.Total = r.Total.Add(b.Total)
		r.Count += b.Count
		r.ByCategory[b.Key] = b.Total
	}

	for _, b := range byStatus {
		r.ByStatus[b.Key] = b.Count
	}

	for _, b := range byPaymentMethod {
		r.ByPaymentMethod[b.Key] = b.Total
	}
}
