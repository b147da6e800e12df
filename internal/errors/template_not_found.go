package errors

import "net/http"

var ErrTemplateNotFound = &Exception{
	Message:    "prompt template not found",
	StatusCode: http.StatusNotFound,
}
