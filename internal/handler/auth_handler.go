package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse represents a successful signup.
type SignupResponse struct {
	Token string `json:"token"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// AuthFailureResponse represents a failed signup or login.
type AuthFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} SignupResponse
// @Failure 400 {object} AuthFailureResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			return echo.NewHTTPError(http.StatusBadRequest, AuthFailureResponse{
				Success: false,
				Error:   "email_exists",
				Message: "Email already exists",
			})
		}
		c.Logger().Errorf("signup: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.JSON(http.StatusOK, SignupResponse{Token: token})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} AuthFailureResponse
// @Failure 500 {object} AuthFailureResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoAccount):
			return echo.NewHTTPError(http.StatusUnauthorized, AuthFailureResponse{
				Success: false,
				Error:   "Login failed",
				Message: "No account found with this email",
			})
		case errors.Is(err, apperrors.ErrIncorrectPassword):
			return echo.NewHTTPError(http.StatusUnauthorized, AuthFailureResponse{
				Success: false,
				Error:   "Login failed",
				Message: "Incorrect password",
			})
		default:
			c.Logger().Errorf("login: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, AuthFailureResponse{
				Success: false,
				Error:   "Server error",
				Message: "An unexpected error occurred",
			})
		}
	}

	return c.JSON(http.StatusOK, LoginResponse{Success: true, Token: token})
}
