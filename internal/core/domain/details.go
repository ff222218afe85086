package domain

import "time"

// AccountDetails is the optional profile sheet attached to an Account, one
// row per account, replaced wholesale on save.
type AccountDetails struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"account_id"`
	Age             int       `json:"age"`
	Contact         string    `json:"contact"`
	Address         string    `json:"address"`
	Company         string    `json:"company"`
	YearsExperience int       `json:"years_experience"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
