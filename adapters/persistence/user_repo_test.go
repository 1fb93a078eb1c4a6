package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func TestUserRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresUserRepo(mock, logger.NewNopLogger())

	u := &user.User{ID: uuid.New(), Name: "Jane", Email: "jane@x.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresUserRepo(mock, logger.NewNopLogger())

	u := &user.User{ID: uuid.New(), Name: "Jane", Email: "jane@x.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})

	err = repo.Create(context.Background(), u)

	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestUserRepo_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresUserRepo(mock, logger.NewNopLogger())

	id := uuid.New()
	created := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).WithArgs("jane@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow(id, "Jane", "jane@x.com", "hash", created))

	u, err := repo.FindByEmail(context.Background(), "jane@x.com")

	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestUserRepo_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresUserRepo(mock, logger.NewNopLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).WithArgs("nobody@x.com").WillReturnError(pgx.ErrNoRows)

	_, err = repo.FindByEmail(context.Background(), "nobody@x.com")

	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
