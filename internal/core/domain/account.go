package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Account is an identity record. The stored bcrypt hash is excluded from
// every JSON rendering here, at the single serialization boundary, so no
// handler or view can leak it.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	Deleted      bool      `json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountUpdate carries the mutable profile fields for a partial update.
// Nil means "leave unchanged".
type AccountUpdate struct {
	Email    *string
	Password *string
	Role     *string
	Active   *bool
}
