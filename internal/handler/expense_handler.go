package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"spendwise/internal/auth"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/model"
	"spendwise/internal/repository"
	"spendwise/internal/service"
)

// dateLayout is the wire format for expense dates and filter bounds.
const dateLayout = "2006-01-02"

// ExpenseHandler handles expense endpoints. Every route sits behind the
// identity middleware, so CurrentClaims is always populated here.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents an expense create or update payload. The
// owner is never part of the payload; it comes from the verified token.
type ExpenseRequest struct {
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Date        string `json:"date,omitempty"`
}

// TotalResponse represents the owner's total spending.
type TotalResponse struct {
	Total string `json:"total"`
}

// MessageResponse represents a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// parseInput converts a bound request into a service input, rejecting
// non-positive amounts and malformed dates.
func parseInput(req ExpenseRequest) (service.ExpenseInput, *echo.HTTPError) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return service.ExpenseInput{}, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "amount must be a positive decimal",
			Code:  "INVALID_AMOUNT",
		})
	}

	in := service.ExpenseInput{
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return service.ExpenseInput{}, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "date must be formatted as YYYY-MM-DD",
				Code:  "INVALID_DATE",
			})
		}
		in.Date = &date
	}
	return in, nil
}

// Create godoc
// @Summary Add an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "Expense data"
// @Success 201 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, httpErr := parseInput(req)
	if httpErr != nil {
		return httpErr
	}

	claims := auth.CurrentClaims(c)
	expense, err := h.expenseService.Create(c.Request().Context(), claims.UserID, in)
	if err != nil {
		c.Logger().Errorf("create expense: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, expense)
}

// List godoc
// @Summary List all expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Expense
// @Failure 401 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	expenses, err := h.expenseService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		c.Logger().Errorf("list expenses: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	return c.JSON(http.StatusOK, expenses)
}

// Filter godoc
// @Summary List expenses matching optional filters
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category"
// @Param startDate query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {array} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/filter [get]
func (h *ExpenseHandler) Filter(c echo.Context) error {
	filter := repository.ExpenseFilter{Category: c.QueryParam("category")}

	if v := c.QueryParam("startDate"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "startDate must be formatted as YYYY-MM-DD",
				Code:  "INVALID_DATE",
			})
		}
		filter.StartDate = &date
	}
	if v := c.QueryParam("endDate"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "endDate must be formatted as YYYY-MM-DD",
				Code:  "INVALID_DATE",
			})
		}
		// Inclusive upper bound: cover the whole end day.
		end := date.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	claims := auth.CurrentClaims(c)
	expenses, err := h.expenseService.Filter(c.Request().Context(), claims.UserID, filter)
	if err != nil {
		c.Logger().Errorf("filter expenses: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	return c.JSON(http.StatusOK, expenses)
}

// Update godoc
// @Summary Update an owned expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param request body ExpenseRequest true "Expense data"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid expense ID",
			Code:  "INVALID_UUID",
		})
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, httpErr := parseInput(req)
	if httpErr != nil {
		return httpErr
	}

	claims := auth.CurrentClaims(c)
	expense, err := h.expenseService.Update(c.Request().Context(), claims.UserID, id, in)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("update expense: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, expense)
}

// Delete godoc
// @Summary Delete an owned expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid expense ID",
			Code:  "INVALID_UUID",
		})
	}

	claims := auth.CurrentClaims(c)
	if err := h.expenseService.Delete(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("delete expense: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "expense deleted"})
}

// CategorySummary godoc
// @Summary Total spending per category
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CategoryTotal
// @Failure 401 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/category-summary [get]
func (h *ExpenseHandler) CategorySummary(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	totals, err := h.expenseService.CategorySummary(c.Request().Context(), claims.UserID)
	if err != nil {
		c.Logger().Errorf("category summary: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, totals)
}

// Total godoc
// @Summary Total spending
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TotalResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/total [get]
func (h *ExpenseHandler) Total(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	total, err := h.expenseService.Total(c.Request().Context(), claims.UserID)
	if err != nil {
		c.Logger().Errorf("total: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, TotalResponse{Total: total.String()})
}
