package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hive/internal/delivery/http/response"
	"hive/internal/usecase"
)

// AnalyticsHandler holds dependencies for the dashboard endpoints.
type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Stores reports rolling metrics and recent activity per store.
func (h *AnalyticsHandler) Stores(c echo.Context) error {
	report, err := h.uc.StoreAnalytics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "")
}

// Inventory reports stock health for one store.
func (h *AnalyticsHandler) Inventory(c echo.Context) error {
	report, err := h.uc.InventoryAnalytics(c.Request().Context(), c.Param("store_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "")
}
