package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/medicine-service/internal/domain"
)

var userCols = []string{
	"id", "username", "email", "password_hash", "role",
	"reset_password_token", "reset_password_expires", "created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("staff2", "staff2@example.com", "hashed", domain.RoleStaff).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("user-1", now, now))

	repo := NewUserRepository(mock)
	user := &domain.User{
		Username:     "staff2",
		Email:        "staff2@example.com",
		PasswordHash: "hashed",
		Role:         domain.RoleStaff,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM users WHERE email=\$1`).
		WithArgs("staff2@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("user-1", "staff2", "staff2@example.com", "hashed", domain.RoleStaff, nil, nil, now, now))

	repo := NewUserRepository(mock)
	user, err := repo.GetByEmail(context.Background(), "staff2@example.com")
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, domain.RoleStaff, user.Role)
	assert.Nil(t, user.ResetPasswordToken)
	assert.Nil(t, user.ResetPasswordExpires)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NoRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE email=\$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByResetToken_ScansPair(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	token := "tok"
	expires := now.Add(time.Hour)
	mock.ExpectQuery(`reset_password_token=\$1 AND reset_password_expires > NOW\(\)`).
		WithArgs("tok").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("user-1", "staff2", "staff2@example.com", "hashed", domain.RoleStaff, &token, &expires, now, now))

	repo := NewUserRepository(mock)
	user, err := repo.GetByResetToken(context.Background(), "tok")
	require.NoError(t, err)

	require.NotNil(t, user.ResetPasswordToken)
	assert.Equal(t, "tok", *user.ResetPasswordToken)
	require.NotNil(t, user.ResetPasswordExpires)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("staff2", "staff2@example.com", "rehashed", domain.RoleStaff,
			(*string)(nil), (*time.Time)(nil), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepository(mock)
	err = repo.Update(context.Background(), &domain.User{
		ID:           "user-1",
		Username:     "staff2",
		Email:        "staff2@example.com",
		PasswordHash: "rehashed",
		Role:         domain.RoleStaff,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_MissingRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("ghost", "ghost@example.com", "hash", domain.RoleStaff,
			(*string)(nil), (*time.Time)(nil), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewUserRepository(mock)
	err = repo.Update(context.Background(), &domain.User{
		ID:           "missing",
		Username:     "ghost",
		Email:        "ghost@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleStaff,
	})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListRecent(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM users ORDER BY updated_at DESC LIMIT \$1`).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("user-2", "bob", "bob@example.com", "h", domain.RoleDoctor, nil, nil, now, now).
			AddRow("user-1", "alice", "alice@example.com", "h", domain.RoleStaff, nil, nil, now, now))

	repo := NewUserRepository(mock)
	users, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "user-2", users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
