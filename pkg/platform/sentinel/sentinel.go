package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores wrap these so services can
// translate them into domain errors without knowing the backend:
// - ErrUnavailable: the durable medium could not be read or written
// - ErrInvalidState: persisted content exists but cannot be decoded
var (
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
