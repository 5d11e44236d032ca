package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"ticket_hotels/internal/adapters/auth"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

type userIDKey struct{}

// RequireAuth rejects requests without a valid bearer token and session.
func RequireAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "bearer token required")
				return
			}
			token := strings.TrimSpace(header[len("Bearer "):])
			if token == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "bearer token required")
				return
			}

			userID, err := a.Authenticate(r.Context(), token)
			if err != nil {
				ev := log.Debug()
				if !errors.IsAny(err, auth.ErrInvalidToken, auth.ErrExpiredToken, auth.ErrNoSession) {
					ev = log.Error()
				}
				ev.Err(err).Msg("authentication failed")
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
