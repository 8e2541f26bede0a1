// Package booking implements the seat booking decision procedure: the
// sequence of existence checks, capacity arithmetic, duplicate
// detection and the atomic recording of a successful booking, together
// with the store and notifier contracts it depends on.
package booking

import "errors"

// Sentinel errors for the four business-rule violations. Handlers
// translate each into a distinct HTTP status so callers can tell
// "already registered" apart from "webinar full".
var (
	// ErrUserNotFound is returned when the requesting user does not
	// exist in the user store.
	ErrUserNotFound = errors.New("user does not exist")

	// ErrWebinarNotFound is returned when the target webinar does not
	// exist.
	ErrWebinarNotFound = errors.New("webinar does not exist")

	// ErrNoSeatsAvailable is returned when the webinar's capacity is
	// exhausted at evaluation time.
	ErrNoSeatsAvailable = errors.New("no seats available")

	// ErrAlreadyParticipating is returned when the user already holds a
	// seat for the webinar.
	ErrAlreadyParticipating = errors.New("user is already participating for this webinar")
)
