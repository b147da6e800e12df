package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode maps err to the HTTP status of the first Exception in its chain.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text safe to show a client. Wrapped details are
// kept for client errors and hidden for server errors.
func PublicMessage(err error) string {
	var appErr *Exception
	if !errors.As(err, &appErr) {
		return http.StatusText(http.StatusInternalServerError)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		return appErr.Message
	}
	return err.Error()
}
