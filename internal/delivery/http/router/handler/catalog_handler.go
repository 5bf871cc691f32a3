package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hive/internal/delivery/http/response"
	"hive/internal/usecase"
)

// defaultSearchLimit caps search and recommendation result sets when the
// caller does not ask for a size.
const defaultSearchLimit = 10

// CatalogHandler holds dependencies for menu browsing and search.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListMenu returns the full menu.
func (h *CatalogHandler) ListMenu(c echo.Context) error {
	items, err := h.uc.ListMenu(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "")
}

// Search ranks menu items against the free-text query.
func (h *CatalogHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Query parameter 'q' is required")
	}

	results, err := h.uc.Search(c.Request().Context(), query, queryLimit(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, results, "")
}

// queryLimit reads the optional "limit" query parameter.
func queryLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		return defaultSearchLimit
	}

	return limit
}
