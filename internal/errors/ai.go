package errors

import "net/http"

var ErrAINotConfigured = &Exception{
	Message:    "AI API key is not configured",
	StatusCode: http.StatusServiceUnavailable,
}

var ErrAIUpstream = &Exception{
	Message:    "AI provider request failed",
	StatusCode: http.StatusBadGateway,
}

var ErrInvalidAction = &Exception{
	Message:    "invalid AI action",
	StatusCode: http.StatusBadRequest,
}
