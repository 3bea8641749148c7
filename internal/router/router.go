// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/handler"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/middleware"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
)

// NewRouter builds the Echo instance that serves the whole API.
//
// Middleware order matters:
//   - request id, then the New Relic transaction, so both reach the logger
//   - the access logger wraps everything that can fail, so every response is logged
//   - the body is captured before static files and handlers consume it
//   - Recover sits closest to the handlers
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.CaptureBody(),
		middlewares.Global.Static(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerPersonRoutes(router, h)

	return router
}
