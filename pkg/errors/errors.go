package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// Scheduling errors raised by the calendar generator.
var (
	ErrPeriodNotFound       = New("PERIOD_NOT_FOUND", http.StatusNotFound, "no academic period covers the requested start date")
	ErrProgramNoSchedule    = New("PROGRAM_HAS_NO_SCHEDULE", http.StatusConflict, "the program has no teaching records in the resolved period")
	ErrWindowExhausted      = New("WINDOW_EXHAUSTED", http.StatusConflict, "the application window has no usable days left")
	ErrNoRoomAvailable      = New("NO_ROOM_AVAILABLE", http.StatusConflict, "no room satisfies the group at the requested slot")
	ErrNoInvigilatorFree    = New("NO_INVIGILATOR_AVAILABLE", http.StatusConflict, "no active teacher is free at the requested slot")
	ErrCalendarAlreadyFinal = New("CALENDAR_FINALIZED", http.StatusConflict, "approved requests cannot be regenerated")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
