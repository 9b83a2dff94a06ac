package core

// Error codes for domain errors.
const (
	ErrCodeAuth            = "auth_error"
	ErrCodeCrypto          = "crypto_error"
	ErrCodePayloadTooLarge = "payload_too_large"
	ErrCodeTransport       = "transport_error"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeNotInRoom       = "not_in_room"
	ErrCodeBadRequest      = "bad_request"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
