package errors

import "net/http"

var ErrMemberNotFound = &Exception{
	Message:    "member not found",
	StatusCode: http.StatusNotFound,
}
