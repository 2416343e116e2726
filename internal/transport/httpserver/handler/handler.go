// Package handler provides HTTP handlers for the API.
//
// Every handler runs Validate -> Dispatch -> Shape: query parameters are bound
// and validated before any service call, service results are written with an
// X-Cache header, and failures are rendered as dto.ErrorResponse with the
// status chosen by domain.StatusFor.
package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"what2watch-gateway/internal/app/facade"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/transport/httpserver/dto"
	"what2watch-gateway/internal/validator"
)

// bindQuery parses the query string into out, trims every string field and validates it.
func bindQuery(c *fiber.Ctx, v *validator.Validator, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return domain.NewValidationError("query", "invalid query parameters")
	}
	trimStrings(out)

	return v.Validate(out)
}

// bindPath is bindQuery for requests that also carry path parameters.
func bindPath(c *fiber.Ctx, v *validator.Validator, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return domain.NewValidationError("query", "invalid query parameters")
	}
	if err := c.ParamsParser(out); err != nil {
		return domain.NewValidationError("path", "invalid path parameters")
	}
	trimStrings(out)

	return v.Validate(out)
}

// trimStrings trims surrounding whitespace so a blank value fails "required".
func trimStrings(out interface{}) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return
	}

	rv = rv.Elem()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

// sendResult writes a vendor body through unchanged.
func sendResult(c *fiber.Ctx, res facade.Result) error {
	c.Set(dto.HeaderCache, string(res.Status))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	return c.Send(res.Body)
}

// respondError maps err to a status code and an ErrorResponse.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := domain.StatusFor(err)

	if status == fiber.StatusServiceUnavailable {
		logger.Warn("vendor request failed",
			zap.Error(err),
			zap.String("path", c.Path()),
		)
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: errorMessage(status, err)})
}

// errorMessage returns the caller-facing message. Vendor bodies are never echoed.
func errorMessage(status int, err error) string {
	vendor := vendorName(err)

	switch status {
	case fiber.StatusBadRequest:
		return err.Error()
	case fiber.StatusNotFound:
		return fmt.Sprintf("%s could not find the requested resource", vendor)
	default:
		if vendor == "" {
			return "service temporarily unavailable"
		}

		return fmt.Sprintf("%s is temporarily unavailable", vendor)
	}
}

func vendorName(err error) string {
	var ve *domain.VendorError
	if errors.As(err, &ve) {
		return ve.Vendor
	}

	var ue *domain.VendorUnreachableError
	if errors.As(err, &ue) {
		return ue.Vendor
	}

	return ""
}
