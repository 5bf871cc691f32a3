package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hive/internal/delivery/http/response"
	"hive/internal/usecase"
)

// LoyaltyHandler holds dependencies for member-facing loyalty endpoints.
type LoyaltyHandler struct {
	uc usecase.LoyaltyUsecase
}

// NewLoyaltyHandler is the constructor for LoyaltyHandler, injected by Fx.
func NewLoyaltyHandler(uc usecase.LoyaltyUsecase) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc}
}

// GetCustomer returns the loyalty profile.
func (h *LoyaltyHandler) GetCustomer(c echo.Context) error {
	customer, err := h.uc.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}

// Redeem deducts points for a reward.
func (h *LoyaltyHandler) Redeem(c echo.Context) error {
	var input *usecase.RedeemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid redemption input")
	}

	result, err := h.uc.Redeem(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Points redeemed")
}

// Recommendations returns menu items ranked against the customer's tastes.
func (h *LoyaltyHandler) Recommendations(c echo.Context) error {
	results, err := h.uc.Recommendations(c.Request().Context(), c.Param("id"), queryLimit(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, results, "")
}
