package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"spendwise/internal/auth"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/model"
	"spendwise/internal/repository"
	"spendwise/internal/service"
)

// MockExpenseService is a mock implementation of service.ExpenseService.
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) Create(ctx context.Context, ownerID uint, in service.ExpenseInput) (*model.Expense, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseService) List(ctx context.Context, ownerID uint) ([]model.Expense, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseService) Filter(ctx context.Context, ownerID uint, filter repository.ExpenseFilter) ([]model.Expense, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseService) Update(ctx context.Context, ownerID uint, id uuid.UUID, in service.ExpenseInput) (*model.Expense, error) {
	args := m.Called(ctx, ownerID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseService) Delete(ctx context.Context, ownerID uint, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockExpenseService) CategorySummary(ctx context.Context, ownerID uint) ([]model.CategoryTotal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryTotal), args.Error(1)
}

func (m *MockExpenseService) Total(ctx context.Context, ownerID uint) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// newExpenseEcho mounts the expense routes behind the real identity
// middleware, exactly as the router does, and returns a valid token for
// user 42.
func newExpenseEcho(svc *MockExpenseService) (*echo.Echo, string) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	jwtService := auth.NewJWTService("test-secret")
	h := NewExpenseHandler(svc)

	g := e.Group("/api/expenses", auth.Identity(jwtService))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/filter", h.Filter)
	g.GET("/category-summary", h.CategorySummary)
	g.GET("/total", h.Total)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	token, err := jwtService.Issue(42, "user", "owner@example.com")
	if err != nil {
		panic(err)
	}
	return e, token
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExpenseHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockExpenseService)
		expectedCode int
	}{
		{
			name: "valid expense created for the token's owner",
			body: `{"description":"groceries","amount":"19.99","category":"food"}`,
			setupMock: func(m *MockExpenseService) {
				m.On("Create", mock.Anything, uint(42), mock.MatchedBy(func(in service.ExpenseInput) bool {
					return in.Description == "groceries" &&
						in.Amount.Equal(decimal.RequireFromString("19.99")) &&
						in.Category == "food" && in.Date == nil
				})).Return(&model.Expense{ID: uuid.New(), OwnerID: 42, Description: "groceries"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "zero amount rejected",
			body:         `{"description":"groceries","amount":"0","category":"food"}`,
			setupMock:    func(m *MockExpenseService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative amount rejected",
			body:         `{"description":"groceries","amount":"-5.00","category":"food"}`,
			setupMock:    func(m *MockExpenseService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing category rejected",
			body:         `{"description":"groceries","amount":"19.99"}`,
			setupMock:    func(m *MockExpenseService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad date rejected",
			body:         `{"description":"groceries","amount":"19.99","category":"food","date":"15/01/2024"}`,
			setupMock:    func(m *MockExpenseService) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockExpenseService)
			tt.setupMock(mockSvc)
			e, token := newExpenseEcho(mockSvc)

			rec := doJSON(e, http.MethodPost, "/api/expenses", token, tt.body)

			assert.Equal(t, tt.expectedCode, rec.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestExpenseHandler_Filter_QueryParsing(t *testing.T) {
	mockSvc := new(MockExpenseService)
	mockSvc.On("Filter", mock.Anything, uint(42), mock.MatchedBy(func(f repository.ExpenseFilter) bool {
		if f.Category != "food" || f.StartDate == nil || f.EndDate == nil {
			return false
		}
		wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		// The end bound must cover the whole last day.
		return f.StartDate.Equal(wantStart) &&
			f.EndDate.After(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)) &&
			f.EndDate.Before(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]model.Expense{{Category: "food", OwnerID: 42}}, nil)

	e, token := newExpenseEcho(mockSvc)
	rec := doJSON(e, http.MethodGet, "/api/expenses/filter?category=food&startDate=2024-01-01&endDate=2024-01-31", token, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestExpenseHandler_Filter_NoFilters(t *testing.T) {
	mockSvc := new(MockExpenseService)
	mockSvc.On("Filter", mock.Anything, uint(42), repository.ExpenseFilter{}).
		Return(nil, nil)

	e, token := newExpenseEcho(mockSvc)
	rec := doJSON(e, http.MethodGet, "/api/expenses/filter", token, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestExpenseHandler_Filter_BadDate(t *testing.T) {
	mockSvc := new(MockExpenseService)
	e, token := newExpenseEcho(mockSvc)

	rec := doJSON(e, http.MethodGet, "/api/expenses/filter?startDate=January", token, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestExpenseHandler_Update_NotFoundForForeignExpense(t *testing.T) {
	foreignID := uuid.New()
	mockSvc := new(MockExpenseService)
	mockSvc.On("Update", mock.Anything, uint(42), foreignID, mock.Anything).
		Return(nil, apperrors.ErrExpenseNotFound)

	e, token := newExpenseEcho(mockSvc)
	rec := doJSON(e, http.MethodPut, "/api/expenses/"+foreignID.String(), token,
		`{"description":"hijack","amount":"1.00","category":"food"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestExpenseHandler_Delete_InvalidID(t *testing.T) {
	mockSvc := new(MockExpenseService)
	e, token := newExpenseEcho(mockSvc)

	rec := doJSON(e, http.MethodDelete, "/api/expenses/not-a-uuid", token, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestExpenseHandler_Total(t *testing.T) {
	mockSvc := new(MockExpenseService)
	mockSvc.On("Total", mock.Anything, uint(42)).Return(decimal.Zero, nil)

	e, token := newExpenseEcho(mockSvc)
	rec := doJSON(e, http.MethodGet, "/api/expenses/total", token, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total": "0"}`, rec.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestExpenseHandler_RequiresToken(t *testing.T) {
	mockSvc := new(MockExpenseService)
	e, _ := newExpenseEcho(mockSvc)

	// No header at all, then a garbage bearer token: both 401, and the
	// service is never touched.
	rec := doJSON(e, http.MethodPost, "/api/expenses", "", `{"description":"x","amount":"1.00","category":"food"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/expenses", "garbage", `{"description":"x","amount":"1.00","category":"food"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	mockSvc.AssertExpectations(t)
}
