package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

var userCols = []string{"id", "email", "password_hash", "role", "created_at", "updated_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	u := &model.User{ID: "u-1", Email: "a@b.c", PasswordHash: "hash", Role: model.RoleConsumer, CreatedAt: now, UpdatedAt: now}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt).
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(u.ID, u.Email, u.PasswordHash, u.Role, now, now))

		got, err := repo.Create(ctx, u)

		assert.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, "hash", got.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		got, err := repo.Create(ctx, u)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("a@b.c").
			WillReturnRows(sqlmock.NewRows(userCols).AddRow("u-1", "a@b.c", "hash", "admin", time.Now(), time.Now()))

		got, err := repo.FindByEmail(ctx, "a@b.c")

		assert.NoError(t, err)
		assert.Equal(t, "admin", got.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("missing@b.c").
			WillReturnRows(sqlmock.NewRows(userCols))

		got, err := repo.FindByEmail(ctx, "missing@b.c")

		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "u-1"))

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, "gone"), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
