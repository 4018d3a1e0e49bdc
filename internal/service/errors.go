package service

import "errors"

// Failure categories the handlers translate into HTTP responses.
var (
	// ErrNotFound means the requested recipe or transcript does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable means the structuring service call itself
	// failed (network, auth, quota).
	ErrServiceUnavailable = errors.New("structuring service unavailable")

	// ErrInvalidStructure means the model output carried no parseable
	// JSON object.
	ErrInvalidStructure = errors.New("no structured data in model output")
)
