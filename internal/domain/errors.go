package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist — or
// exists but the caller is not its owner. The two cases are deliberately
// indistinguishable so a non-owner can never confirm a trip exists.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, non-positive day count).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPasswordRequired is returned when resolving a password-protected share
// without the correct password. The same error covers "no password supplied"
// and "wrong password supplied" so callers cannot probe which it was.
// Handlers should map this to HTTP 401.
var ErrPasswordRequired = errors.New("password required")

// ErrConflict is returned by the share repo when an insert hits the unique
// token index. The service layer treats it as a collision signal and retries
// with a fresh token; it never reaches a handler.
var ErrConflict = errors.New("conflict")

// ErrUpstream is returned when a third-party API call fails or times out.
// Handlers map it to HTTP 502 with a generic message; the underlying detail
// is logged server-side only.
var ErrUpstream = errors.New("upstream failure")
