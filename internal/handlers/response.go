package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorEnvelope is the uniform error body returned for every failed request.
// Clients branch on the HTTP status and the status flag; data is always null.
type ErrorEnvelope struct {
	Status          bool   `doc:"Always false for errors"         json:"status"`
	CustomerMessage string `doc:"Human-readable failure message"  json:"customerMessage"`
	Code            string `doc:"HTTP status code as a string"    json:"code"`
	Data            any    `doc:"Always null for errors"          json:"data"`

	httpStatus int
}

func (e *ErrorEnvelope) Error() string {
	return e.CustomerMessage
}

// GetStatus implements huma.StatusError.
func (e *ErrorEnvelope) GetStatus() int {
	return e.httpStatus
}

// NewErrorEnvelope builds the envelope for an error response. It is installed
// as huma.NewError so every error the framework or the handlers produce renders
// in the same shape. Wrapped causes are dropped from the body; internal detail
// is logged, never echoed to clients.
func NewErrorEnvelope(status int, message string, _ ...error) huma.StatusError {
	// Body and parameter validation failures map to plain 400s.
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	return &ErrorEnvelope{
		Status:          false,
		CustomerMessage: message,
		Code:            strconv.Itoa(status),
		Data:            nil,
		httpStatus:      status,
	}
}
