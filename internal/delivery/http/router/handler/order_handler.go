// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hive/internal/delivery/http/response"
	"hive/internal/domain/entity"
	"hive/internal/usecase"
)

// OrderHandler holds dependencies for order submission.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// Submit handles an incoming point-of-sale order. By the time the response
// is written the order is visible to every read endpoint.
func (h *OrderHandler) Submit(c echo.Context) error {
	var input *usecase.SubmitOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	result, err := h.uc.Submit(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Order committed"
	if result.Status == entity.StatusDegraded {
		message = "Order committed with degraded downstream updates"
	}

	return response.Success(c, http.StatusCreated, result, message)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
