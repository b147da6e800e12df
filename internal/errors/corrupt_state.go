package errors

import "net/http"

// ErrCorruptState is returned when a stored collection cannot be decoded.
// The stored value is left as is so it can be recovered by hand.
var ErrCorruptState = &Exception{
	Message:    "stored data is corrupt",
	StatusCode: http.StatusInternalServerError,
}
