package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		username VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		profile_pic TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS tokens (
		token_id UUID PRIMARY KEY,
		token VARCHAR(255) NOT NULL UNIQUE,
		user_id UUID NOT NULL REFERENCES users(user_id),
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
}

// Migrate creates the users and tokens tables. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, m := range migrations {
		_, err := db.ExecContext(ctx, m)

		logger.Log.Infow("db query",
			"query", strings.Join(strings.Fields(m), " "),
			"error", err,
		)

		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
