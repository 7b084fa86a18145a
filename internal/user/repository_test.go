// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func userRows(u User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "subscription", "avatar_url",
		"verification_token", "verified", "session_token",
		"created_at", "updated_at",
	}).AddRow(
		u.ID, u.Email, u.PasswordHash, u.Subscription, u.AvatarURL,
		u.VerificationToken, u.Verified, u.SessionToken,
		u.CreatedAt, u.UpdatedAt,
	)
}

func sampleUser() User {
	now := time.Now()
	avatarURL := "https://www.gravatar.com/avatar/abc?d=retro"
	token := "verification-token"
	return User{
		ID:                "u-1",
		Email:             "alice@example.com",
		PasswordHash:      "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Subscription:      SubscriptionStarter,
		AvatarURL:         &avatarURL,
		VerificationToken: &token,
		Verified:          false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	u := sampleUser()
	now := time.Now()

	mock.ExpectQuery(`(?s)INSERT INTO users`).
		WithArgs(
			u.ID, u.Email, u.PasswordHash, u.Subscription,
			u.AvatarURL, u.VerificationToken,
		).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)

	require.NoError(t, repo.Create(context.Background(), &u))
	assert.Equal(t, now, u.CreatedAt)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	u := sampleUser()
	err := repo.Create(context.Background(), &u)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestCreate_OtherDBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO users`).
		WillReturnError(errors.New("db down"))

	u := sampleUser()
	err := repo.Create(context.Background(), &u)
	require.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrDuplicateKey))
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(userRows(sampleUser()))

	u, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE id = \$1`).
		WithArgs("u-404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "u-404")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(userRows(sampleUser()))

	u, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
}

func TestConsumeVerificationToken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE users\s+SET verified = true, verification_token = NULL, updated_at = NOW\(\)\s+WHERE verification_token = \$1`).
		WithArgs("verification-token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ConsumeVerificationToken(
		context.Background(),
		"verification-token",
	)
	assert.NoError(t, err)
}

func TestConsumeVerificationToken_UnknownOrSpent(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE users\s+SET verified = true, verification_token = NULL`).
		WithArgs("already-spent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ConsumeVerificationToken(context.Background(), "already-spent")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSetSessionToken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	token := "session-jwt"
	mock.ExpectExec(`(?s)UPDATE users\s+SET session_token = \$2`).
		WithArgs("u-1", token).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetSessionToken(context.Background(), "u-1", &token)
	assert.NoError(t, err)
}

func TestSetSessionToken_ClearWithNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE users\s+SET session_token = \$2`).
		WithArgs("u-1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetSessionToken(context.Background(), "u-1", nil)
	assert.NoError(t, err)
}

func TestSetSessionToken_UnknownUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE users\s+SET session_token = \$2`).
		WithArgs("u-404", nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetSessionToken(context.Background(), "u-404", nil)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateAvatarURL(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE users\s+SET avatar_url = \$2`).
		WithArgs("u-1", "/avatars/u-1_me.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateAvatarURL(
		context.Background(),
		"u-1",
		"/avatars/u-1_me.png",
	)
	assert.NoError(t, err)
}

func TestUpdateSubscription(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE users\s+SET subscription = \$2`).
		WithArgs("u-1", SubscriptionPro).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSubscription(context.Background(), "u-1", SubscriptionPro)
	assert.NoError(t, err)
}

func TestUpdateSubscription_UnknownUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE users\s+SET subscription = \$2`).
		WithArgs("u-404", SubscriptionPro).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSubscription(
		context.Background(),
		"u-404",
		SubscriptionPro,
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
