package services

import (
	"fmt"

	"backend/models"
)

// ValidationError: a required field is missing or has an invalid value.
// Controllers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError: the record is absent or not owned by the caller.
// Controllers map it to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// GatewayError: a single channel's delivery failed. Never propagated past
// the dispatcher; it only appears in per-channel results and logs.
type GatewayError struct {
	Channel models.Channel
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Channel, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
