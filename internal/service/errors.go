package service

import "errors"

// Domain sentinels. Handlers map these to HTTP statuses; batch processing
// wraps them into per-item error strings.
var (
	ErrGameNotFound  = errors.New("game not found")
	ErrBookNotFound  = errors.New("book not found")
	ErrShiftNotFound = errors.New("shift not found")
	ErrUserNotFound  = errors.New("user not found")

	// ErrValidation marks malformed or out-of-range input the caller can
	// correct and resubmit.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a uniqueness or concurrent-modification violation,
	// e.g. a batch item whose baseline no longer matches the live cursor.
	ErrConflict = errors.New("conflict")
)
