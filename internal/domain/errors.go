package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrBadRequest      = errors.New("bad request")
)

// ExternalError carries the error body returned by the identity-verification
// API. Handlers forward its code and message verbatim in the 500 envelope.
type ExternalError struct {
	StatusCode   int    `json:"-"`
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	RequestID    string `json:"request_id,omitempty"`
}

func (e *ExternalError) Error() string {
	return "identity verification api: " + e.ErrorCode + ": " + e.ErrorMessage
}
