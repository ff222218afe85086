package domain

import "errors"

var (
	// ErrInvalidCredentials hides whether the username or the password was
	// wrong, to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")

	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	// ErrDetailsExists guards the unique contact number across details rows.
	ErrDetailsExists   = errors.New("account details already exist")
	ErrDetailsNotFound = errors.New("account details not found")
	ErrTeamExists      = errors.New("team already exists")
	ErrTeamNotFound    = errors.New("team not found")
	ErrMemberExists    = errors.New("account already in team")

	// ErrSessionExists guards the session uniqueness constraints; a correct
	// token issuer never triggers it, the store enforces it anyway.
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")

	// Token / session rejection reasons. The auth gate keeps these distinct
	// so callers (and tests) can tell which check failed.
	ErrTokenMissing    = errors.New("token missing")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenMismatch   = errors.New("token does not belong to this account")
	ErrSessionInactive = errors.New("session inactive")

	// ErrAlreadyLoggedOut marks an idempotent repeat logout; handlers render
	// it as success, not as a failure.
	ErrAlreadyLoggedOut = errors.New("already logged out")

	ErrTooManyAttempts = errors.New("too many login attempts")
	ErrForbidden       = errors.New("access forbidden")
)
