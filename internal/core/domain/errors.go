package domain

import "errors"

// ErrNotFound covers both true absence and ownership-scope misses so the
// two are indistinguishable to callers.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when the store's unique email constraint
// rejects a commit.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is deliberately generic: it never reveals whether
// the email or the password was wrong.
var ErrInvalidCredentials = errors.New("authentication failed")

// ErrInvalidUpdateField is returned before any mutation when a partial
// update names a field outside the allow-set.
var ErrInvalidUpdateField = errors.New("invalid update fields")

// ErrMalformedBody is returned when a request body is not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

// ErrWeakPassword is returned by the password policy before hashing.
var ErrWeakPassword = errors.New("password does not meet requirements")
