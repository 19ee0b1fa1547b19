// Package apperr defines the error taxonomy shared by repositories and HTTP
// handlers. Handlers map these to HTTP statuses; page routes surface them as
// flash notices instead.
package apperr

import "errors"

var (
	// ErrNotFound: the requested id/entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a uniqueness constraint (username, email) would break.
	ErrConflict = errors.New("already exists")
	// ErrValidation: malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrBadCredentials: password verification failed. Deliberately does not
	// distinguish a wrong password from a missing account.
	ErrBadCredentials = errors.New("invalid credentials")
)
