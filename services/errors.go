package services

import "errors"

var (
	// ErrProfileUnavailable means the profile row never materialized, even
	// after waiting out the provisioning webhook. Fatal to a check-in.
	ErrProfileUnavailable = errors.New("profile unavailable")

	// ErrFutureDate rejects a check-in toggle for a day after today.
	ErrFutureDate = errors.New("cannot check in on a future date")

	// ErrDayOutOfRange rejects a toggle index outside the visible window.
	ErrDayOutOfRange = errors.New("day index out of range")

	// ErrPersistenceWrite marks a failed primary write. The operation must not
	// report success when this is returned.
	ErrPersistenceWrite = errors.New("persistence write failed")
)
