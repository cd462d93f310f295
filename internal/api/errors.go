package api

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("not found")

// Error carries the machine code, human message and HTTP status of a
// failed remote call. Transport failures have Status 0.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

func newTransportError(err error) *Error {
	return &Error{
		Code:    "transport",
		Message: err.Error(),
	}
}

func newStatusError(status int) *Error {
	return &Error{
		Code:    fmt.Sprintf("http_%d", status),
		Message: http.StatusText(status),
		Status:  status,
	}
}
