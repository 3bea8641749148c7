package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/handler"
)

// registerSystemRoutes registers "system" endpoints that are not part of business logic:
//  1. Health endpoint
//  2. Docs UI and the OpenAPI document it renders
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	docs := r.Group("/docs")
	docs.GET("", h.OpenAPI.ServeOpenAPIUI)
	docs.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
