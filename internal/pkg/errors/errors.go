package errors

import "errors"

var (
	// ErrUserNotFound is returned when a user id does not resolve to a row.
	ErrUserNotFound = errors.New("user not found")
	// ErrHabitNotFound is returned when a habit id does not resolve to a catalog entry.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrEmailInUse is returned on registration with an already-registered email.
	ErrEmailInUse = errors.New("email is already in use")
	// ErrInvalidCredentials covers both unknown-email and wrong-password logins.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
