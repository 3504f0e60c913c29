package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check endpoints. storeCheck pings whichever
// vector backend is configured.
type HealthHandler struct {
	storeName  string
	storeCheck func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storeName string, storeCheck func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{storeName: storeName, storeCheck: storeCheck}
}

// HealthResponse is the response for basic health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StoreHealthResponse is the response for the vector-store health check
type StoreHealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// StoreHealth handles GET /health/store
func (h *HealthHandler) StoreHealth(c echo.Context) error {
	if h.storeCheck == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_configured",
			"error":  "vector store is not configured",
		})
	}

	if err := h.storeCheck(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, StoreHealthResponse{
		Status: "connected",
		Store:  h.storeName,
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/health/store", h.StoreHealth)
}
