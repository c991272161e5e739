// Package errors carries the status, code and user facing message of a failed
// request from the handlers to the transport's error encoder.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	UnknownCode    = -1
	DefaultStatus  = http.StatusInternalServerError
	UnknownReason  = "UNKNOWN"
	UnknownMessage = "Server error"
)

type Error interface {
	error
	HttpStatus() int
	Code() int
	Reason() string
	Message() string
	Unwrap() error
}

type statusError struct {
	code    int
	status  int
	reason  string
	message string
	cause   error
}

func (e *statusError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("error: code = %d reason = %s message = %s cause = %v", e.code, e.reason, e.message, e.cause)
	}
	return fmt.Sprintf("error: code = %d reason = %s message = %s", e.code, e.reason, e.message)
}

func (e *statusError) HttpStatus() int {
	return e.status
}

func (e *statusError) Code() int {
	return e.code
}

func (e *statusError) Reason() string {
	return e.reason
}

func (e *statusError) Message() string {
	return e.message
}

func (e *statusError) Unwrap() error {
	return e.cause
}

func New(code, status int, reason, message string) Error {
	return &statusError{
		code:    code,
		status:  status,
		reason:  reason,
		message: message,
	}
}

// FromError 包装err, status为0时使用DefaultStatus
func FromError(code, status int, reason, message string, err error) Error {
	if status == 0 {
		status = DefaultStatus
	}

	return &statusError{
		code:    code,
		status:  status,
		reason:  reason,
		message: message,
		cause:   err,
	}
}

// As 在错误链中查找Error
func As(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// Unknown wraps an unexpected error as a 500 with the "Server error: " prefix.
func Unknown(err error) Error {
	return FromError(UnknownCode, DefaultStatus, UnknownReason, UnknownMessage+": "+err.Error(), err)
}
