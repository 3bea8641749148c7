package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/errs"
)

// validate is shared by every request type; validator caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

// newValidator reports fields by their JSON name so field errors match
// what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that calls Struct(req)
// - Return validator.ValidationErrors or a ready *errs.HTTPError
type Validatable interface {
	Validate() error
}

// Struct validates v against its `validate` struct tags.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the struct from path params and the JSON body.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) if either step fails.
//
// A body that is not JSON is ignored rather than rejected, so the payload
// is validated with its body fields left empty.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil && !errors.Is(err, echo.ErrUnsupportedMediaType) {
		return errs.NewBadRequestError(errs.MessageMalformedBody, nil, nil)
	}

	err := payload.Validate()
	if err == nil {
		return nil
	}

	// Request types decide the exact client message themselves.
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	return errs.NewBadRequestError("Validation failed", nil, FieldErrors(err))
}

// FieldErrors converts validator errors into field errors.
// It returns nil for any other error.
func FieldErrors(err error) []errs.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())

		var msg string
		switch {
		case e.Tag() == "required":
			msg = "is required"
		case e.Param() != "":
			msg = fmt.Sprintf("%s: %s:%s", field, e.Tag(), e.Param())
		default:
			msg = fmt.Sprintf("%s: %s", field, e.Tag())
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
