package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrMissingFailureReason = errors.New("failure reason is required")
	ErrTransitionConflict   = errors.New("order status changed concurrently")
	ErrOrderNotQuotable     = errors.New("order cannot be quoted in its current status")
)
