package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	userRepo := NewUserWriteRepository(db, nil)
	writeRepo := NewTokenWriteRepository(db, nil)
	readRepo := NewTokenReadRepository(db)

	alice := newUser("alice")
	require.NoError(t, userRepo.Create(ctx, alice))

	first := &models.TokenDB{TokenID: uuid.New(), Value: "first-token", UserID: alice.UserID}
	second := &models.TokenDB{TokenID: uuid.New(), Value: "second-token", UserID: alice.UserID}

	t.Run("SaveMultiplePerUser", func(t *testing.T) {
		require.NoError(t, writeRepo.Save(ctx, first))
		require.NoError(t, writeRepo.Save(ctx, second))
		assert.False(t, first.CreatedAt.IsZero())
	})

	t.Run("GetByValue", func(t *testing.T) {
		for _, want := range []*models.TokenDB{first, second} {
			token, err := readRepo.GetByValue(ctx, want.Value)
			require.NoError(t, err)
			require.NotNil(t, token)
			assert.Equal(t, want.TokenID, token.TokenID)
			assert.Equal(t, alice.UserID, token.UserID)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		token, err := readRepo.GetByValue(ctx, "unknown")
		assert.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("DuplicateValue", func(t *testing.T) {
		dup := &models.TokenDB{TokenID: uuid.New(), Value: "first-token", UserID: alice.UserID}
		assert.ErrorIs(t, writeRepo.Save(ctx, dup), ErrUniqueViolation)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		orphan := &models.TokenDB{TokenID: uuid.New(), Value: "orphan", UserID: uuid.New()}
		assert.Error(t, writeRepo.Save(ctx, orphan))
	})
}

func TestTokenWriteRepository_Save_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("INSERT INTO tokens").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	token := &models.TokenDB{TokenID: uuid.New(), Value: "v", UserID: uuid.New()}
	err := NewTokenWriteRepository(db, nil).Save(context.Background(), token)
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenReadRepository_GetByValue_Mock(t *testing.T) {
	t.Run("NoRows", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM tokens").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"token_id", "token", "user_id", "created_at"}))

		token, err := NewTokenReadRepository(db).GetByValue(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM tokens").
			WillReturnError(sql.ErrConnDone)

		token, err := NewTokenReadRepository(db).GetByValue(context.Background(), "any")
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.Nil(t, token)
	})
}
