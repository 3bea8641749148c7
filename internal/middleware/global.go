package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/errs"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
)

const (
	// RequestBodyKey stores the raw request body captured by CaptureBody.
	RequestBodyKey = "request_body"

	// MaxBodySize caps request bodies; larger ones are rejected with 413.
	MaxBodySize = "1M"
)

// GlobalMiddlewares groups “global” middleware and the global error handler.
//
// Middleware functions read shared app dependencies from *server.Server,
// mostly config values (CORS origins, static directory).
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo’s CORS middleware configured by the server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// BodyLimit rejects request bodies larger than MaxBodySize.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(MaxBodySize)
}

// CaptureBody reads the request body once so the access log can include it,
// then puts it back for the binder.
func (global *GlobalMiddlewares) CaptureBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return errors.Wrap(err, "failed to read request body")
			}
			_ = req.Body.Close()

			c.Set(RequestBodyKey, body)
			req.Body = io.NopCloser(bytes.NewReader(body))

			return next(c)
		}
	}
}

// GetRequestBody returns the body captured by CaptureBody, or nil.
func GetRequestBody(c echo.Context) []byte {
	if body, ok := c.Get(RequestBodyKey).([]byte); ok {
		return body
	}
	return nil
}

// RequestLogger returns Echo’s request logger middleware with a zerolog
// LogValuesFunc: one “API” line per request carrying method, uri, status,
// response size, response time and the JSON request body.
//
// HandleError makes the logger run the global error handler first, so the
// logged status is the one the client actually received.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:          true,
		LogStatus:       true,
		LogError:        true,
		LogLatency:      true,
		LogMethod:       true,
		LogResponseSize: true,
		HandleError:     true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger := GetLogger(c)

			// - 5xx = server fault -> Error
			// - 4xx = client fault -> Warn
			// - otherwise -> Info
			var e *zerolog.Event
			switch {
			case v.Status >= 500:
				e = logger.Error().Err(v.Error)
			case v.Status >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e = e.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Int64("content_length", v.ResponseSize).
				Float64("response_time_ms", float64(v.Latency.Microseconds())/1000)

			e = logBody(e, GetRequestBody(c))

			e.Msg("API")

			return nil
		},
	})
}

// logBody attaches body as a JSON value when it parses, {} when it is empty
// and a plain string otherwise.
func logBody(e *zerolog.Event, body []byte) *zerolog.Event {
	if len(bytes.TrimSpace(body)) == 0 {
		return e.RawJSON("body", []byte("{}"))
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return e.Str("body", strings.TrimSpace(string(body)))
	}
	return e.RawJSON("body", compact.Bytes())
}

// Static serves the bundled frontend from the configured directory.
//
// Only GET and HEAD consult the directory. Files that do not exist fall
// through to the router, so API routes and the unknown-endpoint answer
// still apply.
func (global *GlobalMiddlewares) Static() echo.MiddlewareFunc {
	dir := global.server.Config.Server.StaticDir
	if dir == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.StaticWithConfig(middleware.StaticConfig{
		Root:       ".",
		Filesystem: http.Dir(dir),
		Skipper: func(c echo.Context) bool {
			method := c.Request().Method
			return method != http.MethodGet && method != http.MethodHead
		},
	})
}

// Recover returns Echo’s panic recovery middleware.
//
// Panics become errors, which the global error handler turns into 500s.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo’s secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error a handler or middleware returns ends up here and is written as
// {"error": "<message>"}. Errors flagged Empty are written as a bare status.
// Unmatched routes answer 404 unknownEndpoint and anything unclassified
// becomes a generic 500.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// The request logger runs this handler before echo does; the second
	// call finds the response already written.
	if c.Response().Committed {
		return
	}

	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			httpErr = fromEchoError(echoErr)
		} else {
			httpErr = errs.NewInternalServerError()
		}
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Debug()
	}

	if len(httpErr.Errors) > 0 {
		e = e.Interface("field_errors", httpErr.Errors)
	}

	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if httpErr.Empty {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, httpErr.Body())
}

// fromEchoError converts Echo’s own errors into the API error shape.
//
// Route misses (404) and method mismatches (405) both mean no endpoint
// handles the request.
func fromEchoError(echoErr *echo.HTTPError) *errs.HTTPError {
	switch echoErr.Code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return errs.NewUnknownEndpointError()
	}

	message, ok := echoErr.Message.(string)
	if !ok {
		message = http.StatusText(echoErr.Code)
	}

	return &errs.HTTPError{
		Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
		Message: message,
		Status:  echoErr.Code,
	}
}
