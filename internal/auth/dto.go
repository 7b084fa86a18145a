// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/carterperez-dev/contacts-api/internal/user"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type UpdateSubscriptionRequest struct {
	Subscription string `json:"subscription" validate:"required,oneof=starter pro business"`
}

// UserResponse is the public projection: never the hash, never the
// verification token.
type UserResponse struct {
	Email        string  `json:"email"`
	Subscription string  `json:"subscription"`
	AvatarURL    *string `json:"avatarUrl"`
}

type RegisterResponse struct {
	User UserResponse `json:"user"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		Email:        u.Email,
		Subscription: u.Subscription,
		AvatarURL:    u.AvatarURL,
	}
}
