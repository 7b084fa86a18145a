// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/contacts-api/internal/avatar"
	"github.com/carterperez-dev/contacts-api/internal/core"
	"github.com/carterperez-dev/contacts-api/internal/mail"
	"github.com/carterperez-dev/contacts-api/internal/middleware"
	"github.com/carterperez-dev/contacts-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already in use")
	ErrNotVerified        = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
)

type Service struct {
	users   user.Repository
	jwt     *JWTManager
	mailer  mail.Sender
	avatars avatar.Store
	logger  *slog.Logger
}

func NewService(
	users user.Repository,
	jwtManager *JWTManager,
	mailer mail.Sender,
	avatars avatar.Store,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:   users,
		jwt:     jwtManager,
		mailer:  mailer,
		avatars: avatars,
		logger:  logger,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verificationToken, err := core.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	avatarURL := avatar.GravatarURL(req.Email)

	newUser := &user.User{
		ID:                uuid.New().String(),
		Email:             req.Email,
		PasswordHash:      passwordHash,
		Subscription:      user.SubscriptionStarter,
		AvatarURL:         &avatarURL,
		VerificationToken: &verificationToken,
	}

	if err := s.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Best-effort: the user record is already committed, a failed send
	// must not roll it back.
	if err := s.mailer.SendVerificationEmail(ctx, req.Email, verificationToken); err != nil {
		s.logger.Error("failed to send verification email",
			"email", req.Email,
			"error", err,
		)
	}

	resp := toUserResponse(newUser)
	return &resp, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	// Checked only after the password is correct, so this response cannot
	// be used to enumerate unverified accounts.
	if !u.Verified {
		return nil, ErrNotVerified
	}

	token, err := s.jwt.CreateSessionToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("create session token: %w", err)
	}

	if err := s.users.SetSessionToken(ctx, u.ID, &token); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  toUserResponse(u),
	}, nil
}

func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.users.SetSessionToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to a live identity. A token that
// verifies but no longer matches the stored session slot is rejected, so
// logout takes effect immediately and only one session is live per user.
func (s *Service) Authenticate(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	userID, err := s.jwt.VerifySessionToken(token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("authenticate: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !u.HasSession(token) {
		return nil, fmt.Errorf("authenticate: stale token: %w", core.ErrTokenInvalid)
	}

	return &middleware.Identity{
		UserID:       u.ID,
		Email:        u.Email,
		Subscription: u.Subscription,
		AvatarURL:    u.AvatarURL,
	}, nil
}

func (s *Service) UpdateAvatar(
	ctx context.Context,
	userID, filename string,
	src io.Reader,
) (string, error) {
	avatarURL, err := s.avatars.Save(ctx, userID, filename, src)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	if err := s.users.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		return "", fmt.Errorf("persist avatar url: %w", err)
	}

	return avatarURL, nil
}

func (s *Service) UpdateSubscription(
	ctx context.Context,
	userID, subscription string,
) (*UserResponse, error) {
	if !user.ValidSubscription(subscription) {
		return nil, fmt.Errorf(
			"update subscription: invalid subscription %q: %w",
			subscription,
			core.ErrInvalidInput,
		)
	}

	if err := s.users.UpdateSubscription(ctx, userID, subscription); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(u)
	return &resp, nil
}

// VerifyEmail consumes a verification token in a single statement; the
// token is cleared as it is spent, so an already-verified user is
// indistinguishable from an unknown token: both are not-found.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	return s.users.ConsumeVerificationToken(ctx, token)
}

func (s *Service) ResendVerificationEmail(
	ctx context.Context,
	email string,
) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if u.Verified {
		return ErrAlreadyVerified
	}

	// Unverified users normally still hold their registration token;
	// repeated resends reuse it rather than minting a new one.
	var token string
	if u.VerificationToken != nil && *u.VerificationToken != "" {
		token = *u.VerificationToken
	} else {
		token, err = core.GenerateVerificationToken()
		if err != nil {
			return fmt.Errorf("generate verification token: %w", err)
		}
		if err := s.users.SetVerificationToken(ctx, u.ID, token); err != nil {
			return fmt.Errorf("store verification token: %w", err)
		}
	}

	if err := s.mailer.SendVerificationEmail(ctx, u.Email, token); err != nil {
		s.logger.Error("failed to resend verification email",
			"email", u.Email,
			"error", err,
		)
	}

	return nil
}
