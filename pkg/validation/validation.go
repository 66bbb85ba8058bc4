// Package validation checks request structs with go-playground/validator and
// reports the first failing field as a typed error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every *Error with errors.Is.
var ErrInvalid = errors.New("validation failed")

// Error names the offending field and what is wrong with it.
type Error struct {
	Field   string
	Message string
}

// New creates a validation error for field.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error { return ErrInvalid }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return New("", err.Error())
	}

	fe := fieldErrs[0]
	return New(fe.Field(), message(fe))
}

// Var validates a single value against tag, reporting it as field.
func Var(field string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return New(field, err.Error())
	}
	return New(field, message(fieldErrs[0]))
}

// IsUUID reports whether s is a canonical UUID, the format of every entity id.
func IsUUID(s string) bool {
	return validate.Var(s, "uuid") == nil
}

func message(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + param + " characters"
		}
		return "must be at most " + param
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "notblank":
		return "must not be blank"
	default:
		return "is invalid"
	}
}
