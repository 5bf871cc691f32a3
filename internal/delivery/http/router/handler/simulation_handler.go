package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hive/internal/delivery/http/response"
	"hive/internal/usecase"
)

// SimulationHandler holds dependencies for the bulk simulation endpoint.
type SimulationHandler struct {
	uc     usecase.SimulationUsecase
	logger *slog.Logger
}

// NewSimulationHandler is the constructor for SimulationHandler, injected by Fx.
func NewSimulationHandler(uc usecase.SimulationUsecase, logger *slog.Logger) *SimulationHandler {
	return &SimulationHandler{
		uc:     uc,
		logger: logger,
	}
}

// RunBatch replays a synthetic order batch through the pipeline and returns
// the per-order outcomes.
func (h *SimulationHandler) RunBatch(c echo.Context) error {
	var input *usecase.RunBatchInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid simulation input")
	}

	report, err := h.uc.RunBatch(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "Simulation batch finished")
}
