// Package validator provides request validation using go-playground/validator.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"what2watch-gateway/internal/domain"
)

// Validator wraps the go-playground validator with custom configuration.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance.
// Field names in messages come from the query, params or json tag, in that order,
// so errors name the parameter the caller actually sent.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "params", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			if name != "" {
				return name
			}
		}

		return fld.Name
	})

	_ = v.RegisterValidation("posint", validatePositiveInt)

	return &Validator{v: v}
}

// validatePositiveInt accepts decimal strings in 1..MaxInt32, the range vendors take for IDs and counts.
func validatePositiveInt(fl validator.FieldLevel) bool {
	n, err := strconv.ParseInt(fl.Field().String(), 10, 32)

	return err == nil && n > 0
}

// Validate validates the given struct.
// Returns *domain.ValidationError with one entry per failed field, in struct order.
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating request: %w", err)
	}

	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(fieldErrs))}
	for _, e := range fieldErrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   e.Field(),
			Message: formatErrorMessage(e),
		})
	}

	return out
}

// formatErrorMessage generates a human-readable error message.
func formatErrorMessage(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, e.Param())
	case "numeric", "number":
		return fmt.Sprintf("%s must be numeric", field)
	case "posint":
		return fmt.Sprintf("%s must be a positive integer", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in the format %s", field, layoutName(e.Param()))
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", field, paramFields(e.Param()))
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, paramFields(e.Param()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}

// layoutName renders a Go time layout the way API callers know it.
func layoutName(layout string) string {
	if layout == "2006-01-02" {
		return "YYYY-MM-DD"
	}

	return layout
}

// paramFields turns a space-separated list of struct field names into "a or b",
// spelled the way the parameters appear in the query string.
func paramFields(param string) string {
	names := strings.Fields(param)
	for i, n := range names {
		names[i] = snakeCase(n)
	}

	return strings.Join(names, " or ")
}

// snakeCase converts a Go field name such as DaysAhead to days_ahead.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}
