// Package apperr is the service-level error taxonomy. Handlers map these onto
// HTTP statuses; anything that is not an *apperr.Error surfaces as a generic 500.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION"
	CodeConflict          Code = "CONFLICT"
	CodeExternalService   Code = "EXTERNAL_SERVICE_FAILURE"
	CodeSignatureMismatch Code = "SIGNATURE_MISMATCH"
)

var statusByCode = map[Code]int{
	CodeUnauthorized:      401,
	CodeForbidden:         403,
	CodeNotFound:          404,
	CodeValidation:        400,
	CodeConflict:          409,
	CodeExternalService:   502,
	CodeSignatureMismatch: 400,
}

type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) HTTPStatus() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return 500
}

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error { return newf(CodeUnauthorized, "%s", msg) }
func Forbidden(msg string) *Error    { return newf(CodeForbidden, "%s", msg) }
func NotFound(what string) *Error    { return newf(CodeNotFound, "%s not found", what) }

func Validation(format string, a ...any) *Error { return newf(CodeValidation, format, a...) }
func Conflict(format string, a ...any) *Error   { return newf(CodeConflict, format, a...) }

func SignatureMismatch() *Error {
	return newf(CodeSignatureMismatch, "invalid payment signature")
}

func ExternalService(msg string, cause error) *Error {
	e := newf(CodeExternalService, "%s", msg)
	e.cause = cause
	return e
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func Is(err error, code Code) bool {
	ae, ok := As(err)
	return ok && ae.Code == code
}
