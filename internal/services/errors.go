package services

import "errors"

var (
	ErrForbidden      = errors.New("you are not allowed to modify this account")
	ErrNotFound       = errors.New("user not found")
	ErrUnauthorized   = errors.New("incorrect current password")
	ErrStorageFailure = errors.New("storage unavailable")
)

// ValidationError reports a rejected field together with a reason safe to
// show to the client.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// InvalidFileTypeError rejects an avatar upload. It is distinct from
// ErrStorageFailure so callers never retry it.
type InvalidFileTypeError struct {
	Reason string
}

func (e *InvalidFileTypeError) Error() string {
	return e.Reason
}
