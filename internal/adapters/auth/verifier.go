package auth

import (
	"context"

	"github.com/cockroachdb/errors"

	"ticket_hotels/internal/domain"
)

// Verifier accepts a bearer token when it carries a valid signature and a
// session row still holds it.
type Verifier struct {
	tokens   *Tokens
	sessions domain.SessionStore
}

func NewVerifier(t *Tokens, s domain.SessionStore) *Verifier {
	return &Verifier{tokens: t, sessions: s}
}

func (v *Verifier) Authenticate(ctx context.Context, token string) (int64, error) {
	userID, err := v.tokens.Parse(token)
	if err != nil {
		return 0, err
	}

	s, err := v.sessions.SessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, ErrNoSession
		}
		return 0, errors.Wrap(err, "session lookup")
	}
	if s.UserID != userID {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
