package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserWriteRepository_Create_MapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	user, err := repo.Create(context.Background(), newUser("alice", "a@x.com"))
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Create_OtherError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), newUser("alice", "a@x.com"))
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, errors.Is(err, ErrUniqueViolation))
}

func TestUserWriteRepository_SetRefreshToken_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	userID := uuid.New()

	mock.ExpectExec("UPDATE users SET refresh_token").
		WithArgs(userID, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetRefreshToken(context.Background(), userID, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_RotateRefreshToken(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "rotated", affected: 1},
		{name: "stored digest changed", affected: 0, wantErr: ErrStaleRefreshToken},
		{name: "exec error", execErr: sql.ErrConnDone, wantErr: sql.ErrConnDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserWriteRepository(db, nil)

			exp := mock.ExpectExec("UPDATE users SET refresh_token (.+) AND refresh_token = \\$2").
				WithArgs(userID, "old", "new")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.RotateRefreshToken(context.Background(), userID, "old", "new")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserWriteRepository_UsesRequestTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET password").
		WithArgs(userID, "digest").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	repo := NewUserWriteRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
	assert.NoError(t, repo.UpdatePassword(context.Background(), userID, "digest"))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserReadRepository_GetChannelProfile_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)

	mock.ExpectQuery("FROM users u").WillReturnError(sql.ErrConnDone)

	profile, err := repo.GetChannelProfile(context.Background(), "alice", uuid.Nil)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Nil(t, profile)
}
