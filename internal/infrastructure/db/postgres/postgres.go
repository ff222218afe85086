package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a Postgres
// connection.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens a GORM connection pool, verifies connectivity with a ping,
// and returns the handle. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

// accountActivityViewSQL joins accounts with their sessions and team
// memberships for administrative listing. The password column is omitted by
// construction; no read path can surface the hash.
const accountActivityViewSQL = `
CREATE OR REPLACE VIEW account_activity AS
SELECT
    a.id         AS account_id,
    a.username,
    a.email,
    a.role,
    a.active     AS account_active,
    a.deleted    AS account_deleted,
    t.name       AS team_name,
    s.id         AS session_id,
    s.active     AS session_active,
    s.created_at AS session_created_at,
    s.expires_at AS session_expires_at
FROM accounts a
LEFT JOIN sessions s         ON s.account_id = a.id
LEFT JOIN team_memberships m ON m.account_id = a.id AND m.active
LEFT JOIN teams t            ON t.id = m.team_id
`

// Migrate creates the tables from the GORM models and (re)creates the
// reporting view on top of them.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&accountModel{},
		&detailsModel{},
		&sessionModel{},
		&teamModel{},
		&teamMembershipModel{},
		&auditEventModel{},
	); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	if err := db.WithContext(ctx).Exec(accountActivityViewSQL).Error; err != nil {
		return fmt.Errorf("postgres create view: %w", err)
	}
	return nil
}
