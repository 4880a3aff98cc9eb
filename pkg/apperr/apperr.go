// Package apperr holds the error taxonomy shared by services and
// controllers. Controllers match these with errors.As to pick an HTTP
// status; anything unmatched is treated as a 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError is malformed client input (unparsable quantity or
// timestamp). Maps to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FiscalDataError is missing mandatory identification or address data for
// a production submission. Maps to 422.
type FiscalDataError struct {
	Missing []string
}

func (e *FiscalDataError) Error() string {
	return "missing fiscal data: " + strings.Join(e.Missing, ", ")
}

// FiscalComplianceError is an assembled payload violating an
// operation-type invariant. Maps to 422; submission must not happen.
type FiscalComplianceError struct {
	Field    string
	Got      string
	Expected []string
}

func (e *FiscalComplianceError) Error() string {
	return fmt.Sprintf("fiscal compliance: %s=%q, expected one of %v", e.Field, e.Got, e.Expected)
}

// PermissionError is an actor lacking a required capability. Maps to 403.
type PermissionError struct {
	Capability string
	Field      string
}

func (e *PermissionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("missing capability %q to change %s", e.Capability, e.Field)
	}
	return fmt.Sprintf("missing capability %q", e.Capability)
}

// SubmissionError is the fiscal authority being unreachable or rejecting
// the document. The in-flight load creation is rolled back before this
// surfaces. Maps to 502.
type SubmissionError struct {
	Detail string
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return "fiscal submission failed: " + e.Detail + ": " + e.Err.Error()
	}
	return "fiscal submission failed: " + e.Detail
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// StorageError is a persistence failure. Fatal for the request, maps to 500.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotFoundError maps to 404.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// HTTPStatus maps a taxonomy error to the response status used by every
// controller.
func HTTPStatus(err error) int {
	var (
		ve  *ValidationError
		fde *FiscalDataError
		fce *FiscalComplianceError
		pe  *PermissionError
		nfe *NotFoundError
		se  *SubmissionError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &fde), errors.As(err, &fce):
		return http.StatusUnprocessableEntity
	case errors.As(err, &pe):
		return http.StatusForbidden
	case errors.As(err, &nfe):
		return http.StatusNotFound
	case errors.As(err, &se):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
