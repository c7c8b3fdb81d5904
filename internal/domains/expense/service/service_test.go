package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	expenseMocks "hotel/internal/domains/expense/mocks"
	"hotel/internal/domains/expense/model"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
)

const (
	adminID   = "99999999-9999-4999-8999-999999999999"
	expenseID = "77777777-7777-4777-8777-777777777777"
)

func ptr[T any](v T) *T {
	return &v
}

func adminCtx() context.Context {
	return identity.WithContext(context.Background(), identity.Identity{UserID: adminID, Role: constant.RoleAdmin})
}

func laundry() model.Expense {
	return model.Expense{ID: expenseID, Category: "laundry", Amount: decimal.RequireFromString("42.50"), Status: model.StatusPending, PaymentMethod: "cash"}
}

func TestExpenseService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateExpenseRequest
		setupMock func(repo *expenseMocks.MockExpense)
		wantErr   error
		wantCode  int
	}{
		{
			name: "pending with creator and defaults",
			ctx:  adminCtx(),
			req:  dto.CreateExpenseRequest{Category: "utilities", Amount: decimal.RequireFromString("120.75"), Description: "Water", Date: "2026-03-01"},
			setupMock: func(repo *expenseMocks.MockExpense) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e model.Expense) error {
					assert.Equal(t, model.StatusPending, e.Status)
					assert.Equal(t, adminID, e.CreatedBy)
					assert.Equal(t, "cash", e.PaymentMethod)
					assert.Equal(t, "2026-03-01", e.Date.Format("2006-01-02"))
					assert.True(t, decimal.RequireFromString("120.75").Equal(e.Amount))

					return nil
				})
			},
		},
		{
			name:      "negative amount",
			ctx:       adminCtx(),
			req:       dto.CreateExpenseRequest{Category: "utilities", Amount: decimal.NewFromInt(-1), Description: "Refund?"},
			setupMock: func(*expenseMocks.MockExpense) {},
			wantErr:   model.ErrNegativeAmount,
		},
		{
			name:      "bad date",
			ctx:       adminCtx(),
			req:       dto.CreateExpenseRequest{Category: "utilities", Amount: decimal.NewFromInt(1), Description: "x", Date: "March 1st"},
			setupMock: func(*expenseMocks.MockExpense) {},
			wantErr:   model.ErrInvalidDate,
		},
		{
			name:      "needs an identity",
			ctx:       context.Background(),
			req:       dto.CreateExpenseRequest{Category: "utilities", Amount: decimal.NewFromInt(1), Description: "x"},
			setupMock: func(*expenseMocks.MockExpense) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "store failure",
			ctx:  adminCtx(),
			req:  dto.CreateExpenseRequest{Category: "utilities", Amount: decimal.NewFromInt(1), Description: "x"},
			setupMock: func(repo *expenseMocks.MockExpense) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := expenseMocks.NewMockExpense(gomock.NewController(t))
			tt.setupMock(repo)

			res, err := service.New(repo, mocks.NewOtel()).Create(tt.ctx, tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, model.StatusPending, res.Status)
			}
		})
	}
}

func TestExpenseService_GetAll(t *testing.T) {
	repo := expenseMocks.NewMockExpense(gomock.NewController(t))
	repo.EXPECT().GetAll(gomock.Any(), gDto.Sorted(model.FieldDate, gDto.SortDirDesc), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Expense, error) {
			assert.Len(t, filter.Filters, 3)

			return []model.Expense{laundry(), laundry()}, nil
		})

	svc := service.New(repo, mocks.NewOtel())

	res, err := svc.GetAll(adminCtx(), dto.ListExpensesFilter{Category: "laundry", StartDate: "2026-01-01", EndDate: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.True(t, decimal.NewFromInt(85).Equal(res.Total))
	assert.True(t, decimal.NewFromInt(85).Equal(res.ByCategory["laundry"]))

	_, err = svc.GetAll(adminCtx(), dto.ListExpensesFilter{EndDate: "soon"})
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestExpenseService_Update(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		req       dto.UpdateExpenseRequest
		setupMock func(repo *expenseMocks.MockExpense)
		wantErr   error
	}{
		{
			name: "approval stamps the approver",
			id:   expenseID,
			req:  dto.UpdateExpenseRequest{Status: ptr(model.StatusApproved)},
			setupMock: func(repo *expenseMocks.MockExpense) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(laundry(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, adminID, fields[model.FieldApprovedBy])
						assert.NotContains(t, fields, model.FieldAmount)

						return nil
					})

				approved := laundry()
				approved.Status = model.StatusApproved
				approved.ApprovedBy = ptr(adminID)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approved, nil)
			},
		},
		{
			name: "edits while pending leave the approver alone",
			id:   expenseID,
			req:  dto.UpdateExpenseRequest{Notes: ptr("receipt pending"), Date: "2026-02-02"},
			setupMock: func(repo *expenseMocks.MockExpense) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(laundry(), nil).Times(2)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, fields, model.FieldApprovedBy)
						assert.Contains(t, fields, model.FieldDate)

						return nil
					})
			},
		},
		{
			name:      "negative amount",
			id:        expenseID,
			req:       dto.UpdateExpenseRequest{Amount: ptr(decimal.NewFromInt(-5))},
			setupMock: func(*expenseMocks.MockExpense) {},
			wantErr:   model.ErrNegativeAmount,
		},
		{
			name: "missing",
			id:   expenseID,
			req:  dto.UpdateExpenseRequest{Notes: ptr("x")},
			setupMock: func(repo *expenseMocks.MockExpense) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Expense{}, nil)
			},
			wantErr: model.ErrNotFound,
		},
		{
			name:      "non-uuid id",
			id:        "42",
			req:       dto.UpdateExpenseRequest{Notes: ptr("x")},
			setupMock: func(*expenseMocks.MockExpense) {},
			wantErr:   model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := expenseMocks.NewMockExpense(gomock.NewController(t))
			tt.setupMock(repo)

			_, err := service.New(repo, mocks.NewOtel()).Update(adminCtx(), tt.id, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestExpenseService_Delete(t *testing.T) {
	repo := expenseMocks.NewMockExpense(gomock.NewController(t))
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(laundry(), nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, service.New(repo, mocks.NewOtel()).Delete(adminCtx(), expenseID))
}

func TestExpenseService_Stats(t *testing.T) {
	t.Run("combines the grouped queries", func(t *testing.T) {
		repo := expenseMocks.NewMockExpense(gomock.NewController(t))

		repo.EXPECT().Summarize(gomock.Any(), model.FieldCategory, gomock.Any()).Return([]model.Bucket{
			{Key: "laundry", Count: 2, Total: decimal.NewFromInt(85)},
			{Key: "utilities", Count: 1, Total: decimal.RequireFromString("10.5")},
		}, nil)
		repo.EXPECT().Summarize(gomock.Any(), model.FieldStatus, gomock.Any()).Return([]model.Bucket{
			{Key: model.StatusPending, Count: 2, Total: decimal.NewFromInt(50)},
			{Key: model.StatusApproved, Count: 1, Total: decimal.RequireFromString("45.5")},
		}, nil)
		repo.EXPECT().Summarize(gomock.Any(), model.FieldPaymentMethod, gomock.Any()).Return([]model.Bucket{
			{Key: "cash", Count: 3, Total: decimal.RequireFromString("95.5")},
		}, nil)

		res, err := service.New(repo, mocks.NewOtel()).Stats(adminCtx(), dto.ListExpensesFilter{StartDate: "2026-01-01", Category: "ignored"})
		require.NoError(t, err)

		assert.Equal(t, 3, res.Count)
		assert.True(t, decimal.RequireFromString("95.5").Equal(res.Total))
		assert.Equal(t, map[string]int{model.StatusPending: 2, model.StatusApproved: 1}, res.ByStatus)
		assert.True(t, decimal.RequireFromString("95.5").Equal(res.ByPaymentMethod["cash"]))
		assert.True(t, decimal.NewFromInt(85).Equal(res.ByCategory["laundry"]))
	})

	t.Run("a failed query fails the request", func(t *testing.T) {
		repo := expenseMocks.NewMockExpense(gomock.NewController(t))
		repo.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down")).MinTimes(1).MaxTimes(3)

		_, err := service.New(repo, mocks.NewOtel()).Stats(adminCtx(), dto.ListExpensesFilter{})
		require.Error(t, err)
	})
}
