package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation  ErrCode = "validation_error"
	CodeNotFound    ErrCode = "not_found"
	CodeForbidden   ErrCode = "forbidden"
	CodeConflict    ErrCode = "conflict"
	CodeReferential ErrCode = "referential_error"
	CodeUnavailable ErrCode = "unavailable"
	CodeUpstream    ErrCode = "upstream_error"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if len(e.Meta) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrNotFound(msg string) error  { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrForbidden(msg string) error { return &AppError{Code: CodeForbidden, Message: msg} }
func ErrConflict(msg string) error  { return &AppError{Code: CodeConflict, Message: msg} }
func ErrReferential(msg string) error {
	return &AppError{Code: CodeReferential, Message: msg}
}

// ErrUnavailable marks a connectivity failure (database unreachable or not configured).
func ErrUnavailable(msg string, cause error) error {
	return &AppError{Code: CodeUnavailable, Message: msg, Err: cause}
}

// ErrUpstream marks a failure of an external collaborator such as the media store.
func ErrUpstream(msg string, cause error) error {
	return &AppError{Code: CodeUpstream, Message: msg, Err: cause}
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrCode) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func IsUnavailable(err error) bool { return HasCode(err, CodeUnavailable) }
func IsNotFound(err error) bool    { return HasCode(err, CodeNotFound) }
