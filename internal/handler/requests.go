package handler

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/errs"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/validation"
)

// EmptyRequest is the payload of routes that read nothing from the request.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// PersonIDRequest carries the raw :id path segment.
//
// The id is kept as a string so each route can decide how a malformed id
// is reported.
type PersonIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *PersonIDRequest) Validate() error {
	return nil
}

// CreatePersonRequest is the body of POST /api/persons.
type CreatePersonRequest struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required"`
}

// Validate rejects a missing or empty name or number with a single message
// covering both fields.
func (r *CreatePersonRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return errs.NewBadRequestError(errs.MessageMissingFields, nil, validation.FieldErrors(err))
	}
	return nil
}

// UpdateNumberRequest is the path id plus body of PUT /api/persons/:id.
//
// Only number is read from the body; a name sent along is ignored.
type UpdateNumberRequest struct {
	ID     string `param:"id" json:"-"`
	Number string `json:"number" validate:"required"`
}

func (r *UpdateNumberRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return errs.NewBadRequestError(errs.MessageMissingNumber, nil, validation.FieldErrors(err))
	}
	return nil
}

// personID is a path id read as a number.
type personID struct {
	// Numeric is false when the segment does not parse as a number at all.
	Numeric bool

	// Valid is true when the number is an integer in int range; only then
	// can it name a stored person.
	Valid bool

	Value int
}

// parseID reads a path id as a decimal number. Surrounding whitespace is
// tolerated, so " 2 " and "2.0" both name person 2 while "1.5" and
// "1e30" are numbers no person can carry.
func parseID(raw string) personID {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	// Out of range values come back as ±Inf: still numbers.
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(f) {
		return personID{}
	}

	if math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return personID{Numeric: true}
	}

	return personID{Numeric: true, Valid: true, Value: int(f)}
}
