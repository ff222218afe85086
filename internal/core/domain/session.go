package domain

import "time"

// Session is one row per successful login. Rows are deactivated on logout or
// on lazily detected expiry, never deleted, so the table doubles as an audit
// trail of issued tokens.
type Session struct {
	ID        string    `json:"session_id"`
	AccountID string    `json:"account_id"`
	Token     string    `json:"-"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Live reports whether the session still authenticates requests at the given
// instant: the row is active and either has no expiry or one in the future.
func (s *Session) Live(now time.Time) bool {
	if !s.Active {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return true
	}
	return s.ExpiresAt.After(now)
}
