package roster

import "errors"

var (
	// ErrDuplicateUsername reports a Create against a username that is
	// already on the roster.
	ErrDuplicateUsername = errors.New("roster: username already registered")

	// ErrNotFound reports a mutation against a roster id that no longer exists.
	ErrNotFound = errors.New("roster: admin not found")

	// ErrInvalidMethod reports a payment update with an undeclared method value.
	ErrInvalidMethod = errors.New("roster: invalid payment method")
)
