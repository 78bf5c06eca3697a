package storage

import "errors"

var (
	// ErrNotFound is returned when no record exists for the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when creating a user with a username
	// that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidTimeRange is returned when a meeting would end before it
	// starts.
	ErrInvalidTimeRange = errors.New("meeting end time is before start time")

	// ErrInvalidStatus is returned for a status outside
	// pending/accepted/declined.
	ErrInvalidStatus = errors.New("invalid meeting status")
)
