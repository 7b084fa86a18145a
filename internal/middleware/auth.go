// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the resolved caller attached to the request context by the
// authenticator. It carries everything the current-user projection needs,
// so handlers don't go back to the store.
type Identity struct {
	UserID       string
	Email        string
	Subscription string
	AvatarURL    *string
}

// SessionAuthenticator resolves a bearer token to a live identity. It must
// reject tokens that are structurally valid but no longer match the user's
// stored session token.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

func Authenticator(
	auth SessionAuthenticator,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.Unauthorized(w, "Not authorized")
				return
			}

			identity, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				core.Unauthorized(w, "Not authorized")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return ""
}
