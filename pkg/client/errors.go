package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotAuthenticated is returned by calls that need a session when the controller has none.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// IsAuthFailure reports whether the server rejected the session.
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// newAPIError pulls the message out of {"error": ...}, or {"detail": ...} for upstream bodies.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error  string `json:"error"`
		Detail any    `json:"detail"`
	}
	msg := http.StatusText(status)
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Detail != nil:
			msg = fmt.Sprint(payload.Detail)
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}
