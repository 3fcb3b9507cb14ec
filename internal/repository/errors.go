// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrDuplicateUser signals that a registration cannot proceed
// because the username or email is already taken, while the NotFound
// values cover both genuinely absent rows and rows filtered out by an
// ownership predicate.
package repository

import "errors"

// ErrDuplicateUser is returned when an INSERT into users violates the
// unique constraint on username or email. Handlers translate this into
// an HTTP 409 response instead of leaking the raw driver error.
var ErrDuplicateUser = errors.New("username or email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrPetitionNotFound is returned when a petition does not exist or is
// owned by a different user than the caller.
var ErrPetitionNotFound = errors.New("petition not found")

// ErrSignatureNotFound is returned when a signature does not exist or is
// not attached to the calling user.
var ErrSignatureNotFound = errors.New("signature not found")

// ErrComplaintNotFound is returned when a complaint lookup matches no row.
var ErrComplaintNotFound = errors.New("complaint not found")

// ErrComplaintTypeNotFound is returned when a complaint type lookup
// matches no row.
var ErrComplaintTypeNotFound = errors.New("complaint type not found")
