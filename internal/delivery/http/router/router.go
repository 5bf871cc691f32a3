// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"hive/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	OrderHandler      *handler.OrderHandler
	SimulationHandler *handler.SimulationHandler
	CatalogHandler    *handler.CatalogHandler
	LoyaltyHandler    *handler.LoyaltyHandler
	AnalyticsHandler  *handler.AnalyticsHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	orderHandler      *handler.OrderHandler
	simulationHandler *handler.SimulationHandler
	catalogHandler    *handler.CatalogHandler
	loyaltyHandler    *handler.LoyaltyHandler
	analyticsHandler  *handler.AnalyticsHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		orderHandler:      params.OrderHandler,
		simulationHandler: params.SimulationHandler,
		catalogHandler:    params.CatalogHandler,
		loyaltyHandler:    params.LoyaltyHandler,
		analyticsHandler:  params.AnalyticsHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Order pipeline
	e.POST("/orders", r.orderHandler.Submit)
	e.POST("/simulation/rush", r.simulationHandler.RunBatch)

	// Catalog reads
	menuGroup := e.Group("/menu")
	{
		menuGroup.GET("", r.catalogHandler.ListMenu)
		menuGroup.GET("/search", r.catalogHandler.Search)
	}

	// Loyalty member endpoints
	customerGroup := e.Group("/customers")
	{
		customerGroup.GET("/:id", r.loyaltyHandler.GetCustomer)
		customerGroup.POST("/:id/redeem", r.loyaltyHandler.Redeem)
		customerGroup.GET("/:id/recommendations", r.loyaltyHandler.Recommendations)
	}

	// Dashboard aggregations
	analyticsGroup := e.Group("/analytics")
	{
		analyticsGroup.GET("/stores", r.analyticsHandler.Stores)
		analyticsGroup.GET("/inventory/:store_id", r.analyticsHandler.Inventory)
	}
}
