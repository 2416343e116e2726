package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// maxDetailLen bounds the upstream body snippet kept in a VendorError.
const maxDetailLen = 256

// FieldError describes one invalid request parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when required parameters are missing or malformed.
// It is always client-caused and never retried.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}

	return strings.Join(msgs, "; ")
}

// VendorError is a non-2xx reply from a vendor.
type VendorError struct {
	Vendor string
	Status int
	Detail string
}

// NewVendorError creates a VendorError, truncating the body snippet.
func NewVendorError(vendor string, status int, body []byte) *VendorError {
	detail := strings.TrimSpace(string(body))
	if len(detail) > maxDetailLen {
		detail = detail[:maxDetailLen]
	}

	return &VendorError{Vendor: vendor, Status: status, Detail: detail}
}

// Error implements the error interface.
func (e *VendorError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s returned status %d", e.Vendor, e.Status)
	}

	return fmt.Sprintf("%s returned status %d: %s", e.Vendor, e.Status, e.Detail)
}

// VendorUnreachableError is a connection-level failure: DNS, timeout,
// refused connection, open circuit breaker or cancelled request.
type VendorUnreachableError struct {
	Vendor string
	Err    error
}

// Error implements the error interface.
func (e *VendorUnreachableError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Vendor, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *VendorUnreachableError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a vendor confirming the resource does not exist.
func IsNotFound(err error) bool {
	var ve *VendorError

	return errors.As(err, &ve) && ve.Status == http.StatusNotFound
}

// IsUnreachable reports whether err is a connection-level vendor failure.
func IsUnreachable(err error) bool {
	var ue *VendorUnreachableError

	return errors.As(err, &ue)
}

// StatusFor maps an error to the HTTP status returned to callers.
//
//   - ValidationError                        -> 400
//   - VendorError with status 404            -> 404
//   - any other VendorError, unreachable,
//     or unclassified failure                -> 503
func StatusFor(err error) int {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest
	}
	if IsNotFound(err) {
		return http.StatusNotFound
	}

	return http.StatusServiceUnavailable
}
