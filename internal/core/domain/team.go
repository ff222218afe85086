package domain

import "time"

// Team groups accounts for reporting purposes.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMembership links an Account to a Team with a role inside that team.
type TeamMembership struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	AccountID string    `json:"account_id"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountActivity is one row of the denormalized reporting view: account
// fields joined with that account's sessions and team memberships. The view
// never selects the password column, so the hash cannot surface here.
type AccountActivity struct {
	AccountID      string     `json:"account_id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	AccountActive  bool       `json:"account_active"`
	AccountDeleted bool       `json:"account_deleted"`
	TeamName       string     `json:"team_name,omitempty"`
	SessionID      string     `json:"session_id,omitempty"`
	SessionActive  *bool      `json:"session_active,omitempty"`
	SessionCreated *time.Time `json:"session_created_at,omitempty"`
	SessionExpires *time.Time `json:"session_expires_at,omitempty"`
}
