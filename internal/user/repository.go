// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetSessionToken(ctx context.Context, id string, token *string) error
	ConsumeVerificationToken(ctx context.Context, token string) error
	SetVerificationToken(ctx context.Context, id, token string) error
	UpdateAvatarURL(ctx context.Context, id, avatarURL string) error
	UpdateSubscription(ctx context.Context, id, subscription string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, subscription, avatar_url,
		       verification_token, verified, session_token,
		       created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, subscription, avatar_url,
			verification_token
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Subscription,
		user.AvatarURL,
		user.VerificationToken,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE email = $1`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// SetSessionToken overwrites the single session slot; passing nil clears it.
func (r *repository) SetSessionToken(
	ctx context.Context,
	id string,
	token *string,
) error {
	query := `
		UPDATE users
		SET session_token = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("set session token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set session token: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set session token: %w", core.ErrNotFound)
	}

	return nil
}

// ConsumeVerificationToken marks the holder verified and clears the token
// in one statement, so a token can only ever be spent once.
func (r *repository) ConsumeVerificationToken(
	ctx context.Context,
	token string,
) error {
	query := `
		UPDATE users
		SET verified = true, verification_token = NULL, updated_at = NOW()
		WHERE verification_token = $1`

	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("consume verification token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume verification token: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("consume verification token: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetVerificationToken(
	ctx context.Context,
	id, token string,
) error {
	query := `
		UPDATE users
		SET verification_token = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set verification token: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateAvatarURL(
	ctx context.Context,
	id, avatarURL string,
) error {
	query := `
		UPDATE users
		SET avatar_url = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, avatarURL)
	if err != nil {
		return fmt.Errorf("update avatar url: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update avatar url: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update avatar url: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateSubscription(
	ctx context.Context,
	id, subscription string,
) error {
	query := `
		UPDATE users
		SET subscription = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, subscription)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update subscription: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
