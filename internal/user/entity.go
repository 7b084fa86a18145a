// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID                string    `db:"id"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	Subscription      string    `db:"subscription"`
	AvatarURL         *string   `db:"avatar_url"`
	VerificationToken *string   `db:"verification_token"`
	Verified          bool      `db:"verified"`
	SessionToken      *string   `db:"session_token"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

func ValidSubscription(s string) bool {
	return s == SubscriptionStarter ||
		s == SubscriptionPro ||
		s == SubscriptionBusiness
}

func (u *User) HasSession(token string) bool {
	return u.SessionToken != nil && *u.SessionToken == token
}
