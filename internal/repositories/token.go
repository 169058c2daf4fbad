package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
)

// TokenWriteRepository persists bearer tokens.
type TokenWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTokenWriteRepository(db *sqlx.DB, txGetter TxGetter) *TokenWriteRepository {
	return &TokenWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a token. A duplicate value yields ErrUniqueViolation.
func (r *TokenWriteRepository) Save(ctx context.Context, token *models.TokenDB) error {
	const query = `
		INSERT INTO tokens (token_id, token, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &token.CreatedAt, query,
		token.TokenID, token.Value, token.UserID,
	)

	// Token value stays out of the log
	logger.Log.Infow("db query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{token.TokenID, token.UserID},
		"error", err,
	)

	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	return err
}

// TokenReadRepository looks up bearer tokens.
type TokenReadRepository struct {
	db *sqlx.DB
}

func NewTokenReadRepository(db *sqlx.DB) *TokenReadRepository {
	return &TokenReadRepository{db: db}
}

// GetByValue returns the token with the given value, or nil if there is none.
func (r *TokenReadRepository) GetByValue(ctx context.Context, value string) (*models.TokenDB, error) {
	const query = `
		SELECT token_id, token, user_id, created_at
		FROM tokens
		WHERE token = $1
	`

	var token models.TokenDB
	err := r.db.GetContext(ctx, &token, query, value)

	logger.Log.Infow("db query",
		"query", strings.Join(strings.Fields(query), " "),
		"result", token.TokenID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}
