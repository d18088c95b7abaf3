// Package apperr carries a stable, machine checkable category with every error
// returned from the service layer, in the same spirit as gRPC status codes.
package apperr

import (
	"errors"
	"fmt"
)

type Code int

const (
	Internal Code = iota
	Unauthenticated
	Forbidden
	InvalidArgument
	NotFound
	AlreadyExists
	Upstream
)

func (c Code) String() string {
	switch c {
	case Unauthenticated:
		return "Unauthenticated"
	case Forbidden:
		return "Forbidden"
	case InvalidArgument:
		return "InvalidArgument"
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case Upstream:
		return "Upstream"
	default:
		return "Internal"
	}
}

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns Internal for nil-coded or foreign errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return Internal
}

// MessageOf returns the safe, user facing message of err, or fallback when
// err does not carry one.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != Internal {
		return appErr.Message
	}
	return fallback
}
