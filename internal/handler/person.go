package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/errs"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/model"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/service"
)

// PersonHandler serves the /api/persons resource.
type PersonHandler struct {
	Handler
	persons *service.PersonService
}

// NewPersonHandler constructs a PersonHandler.
func NewPersonHandler(s *server.Server, persons *service.PersonService) *PersonHandler {
	return &PersonHandler{
		Handler: NewHandler(s),
		persons: persons,
	}
}

// List returns every person in insertion order.
func (h *PersonHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Person, error) {
	return h.persons.List(c.Request().Context()), nil
}

// Get returns one person. An id that is not a number is a client error
// here, unlike on the write routes; a number no person can carry is simply
// not found.
func (h *PersonHandler) Get(c echo.Context, req *PersonIDRequest) (model.Person, error) {
	id := parseID(req.ID)
	if !id.Numeric {
		return model.Person{}, errs.NewBadRequestError(errs.MessageInvalidID, nil, nil)
	}
	if !id.Valid {
		return model.Person{}, errs.NewNotFoundError(errs.MessagePersonNotFound, nil)
	}

	return h.persons.Get(c.Request().Context(), id.Value)
}

// Create adds a person and returns it with its assigned id.
func (h *PersonHandler) Create(c echo.Context, req *CreatePersonRequest) (model.Person, error) {
	return h.persons.Create(c.Request().Context(), req.Name, req.Number)
}

// UpdateNumber replaces a person's number.
func (h *PersonHandler) UpdateNumber(c echo.Context, req *UpdateNumberRequest) (model.Person, error) {
	id := parseID(req.ID)
	if !id.Valid {
		return model.Person{}, errs.NewNotFoundError(errs.MessagePersonNotFound, nil)
	}

	return h.persons.UpdateNumber(c.Request().Context(), id.Value, req.Number)
}

// Delete removes a person. Malformed, non-integer and unknown ids all answer a bare 404.
func (h *PersonHandler) Delete(c echo.Context, req *PersonIDRequest) error {
	id := parseID(req.ID)
	if !id.Valid {
		return errs.NewEmptyNotFoundError()
	}

	return h.persons.Delete(c.Request().Context(), id.Value)
}
