package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/handler"
)

// registerPersonRoutes registers the phonebook endpoints.
func registerPersonRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/info", handler.HandleHTML(h.Info.Handler, h.Info.Info, &handler.EmptyRequest{}))

	persons := r.Group("/api/persons")

	persons.GET("", handler.Handle(
		h.Person.Handler,
		h.Person.List,
		http.StatusOK,
		&handler.EmptyRequest{},
	))

	persons.GET("/:id", handler.Handle(
		h.Person.Handler,
		h.Person.Get,
		http.StatusOK,
		&handler.PersonIDRequest{},
	))

	persons.POST("", handler.Handle(
		h.Person.Handler,
		h.Person.Create,
		http.StatusOK,
		&handler.CreatePersonRequest{},
	))

	persons.PUT("/:id", handler.Handle(
		h.Person.Handler,
		h.Person.UpdateNumber,
		http.StatusOK,
		&handler.UpdateNumberRequest{},
	))

	persons.DELETE("/:id", handler.HandleNoContent(
		h.Person.Handler,
		h.Person.Delete,
		http.StatusNoContent,
		&handler.PersonIDRequest{},
	))
}
