package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homeneeds/internal/service"
)

// VerifyHandler handles verification code submission and resend.
type VerifyHandler struct {
	verifier    service.VerificationService
	authService service.AuthService
}

// NewVerifyHandler creates a new verify handler.
func NewVerifyHandler(verifier service.VerificationService, authService service.AuthService) *VerifyHandler {
	return &VerifyHandler{verifier: verifier, authService: authService}
}

// VerifyRequest carries a submitted verification code.
type VerifyRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// ResendRequest asks for a fresh verification code.
type ResendRequest struct {
	Name string `json:"name" validate:"required"`
}

// Verify godoc
// @Summary Submit a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Account name and code"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/verify [post]
func (h *VerifyHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.verifier.Submit(c.Request().Context(), req.Name, req.Code)
	if err != nil {
		return respondError(err)
	}

	result, err := h.authService.TokensFor(c.Request().Context(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	})
}

// Resend godoc
// @Summary Resend the verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResendRequest true "Account name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/resend-code [post]
func (h *VerifyHandler) Resend(c echo.Context) error {
	var req ResendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verifier.Resend(c.Request().Context(), req.Name); err != nil {
		return respondError(err)
	}
	// The response is the same whether or not the account exists.
	return c.JSON(http.StatusOK, map[string]string{"message": "new code sent"})
}
