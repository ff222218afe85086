package postgres

import "time"

type accountModel struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey"`
	Username     string    `gorm:"column:username;size:64;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	Role         string    `gorm:"column:role;size:16;not null"`
	Active       bool      `gorm:"column:active;not null"`
	Deleted      bool      `gorm:"column:deleted;not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

type detailsModel struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey"`
	AccountID       string    `gorm:"column:account_id;type:uuid;not null;uniqueIndex"`
	Age             int       `gorm:"column:age;not null"`
	Contact         string    `gorm:"column:contact;size:10;uniqueIndex;not null"`
	Address         string    `gorm:"column:address;size:100"`
	Company         string    `gorm:"column:company;size:50"`
	YearsExperience int       `gorm:"column:years_experience;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`

	Account accountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (detailsModel) TableName() string { return "account_details" }

type sessionModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	AccountID string    `gorm:"column:account_id;type:uuid;not null;index"`
	Token     string    `gorm:"column:token;uniqueIndex;not null"`
	Active    bool      `gorm:"column:active;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at"`

	Account accountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (sessionModel) TableName() string { return "sessions" }

type teamModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;size:64;uniqueIndex;not null"`
	Active    bool      `gorm:"column:active;not null"`
	Deleted   bool      `gorm:"column:deleted;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (teamModel) TableName() string { return "teams" }

type teamMembershipModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	TeamID    string    `gorm:"column:team_id;type:uuid;not null;uniqueIndex:idx_team_account"`
	AccountID string    `gorm:"column:account_id;type:uuid;not null;uniqueIndex:idx_team_account"`
	Role      string    `gorm:"column:role;size:16;not null"`
	Active    bool      `gorm:"column:active;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Team    teamModel    `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Account accountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (teamMembershipModel) TableName() string { return "team_memberships" }

type auditEventModel struct {
	ID       int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username string    `gorm:"column:username;size:64;not null;index"`
	Action   string    `gorm:"column:action;size:16;not null"`
	Success  bool      `gorm:"column:success;not null"`
	Reason   string    `gorm:"column:reason;size:64"`
	At       time.Time `gorm:"column:at;not null"`
}

func (auditEventModel) TableName() string { return "account_audit" }
