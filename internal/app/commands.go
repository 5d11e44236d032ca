package app

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"ticket_hotels/internal/domain"
)

// SeedService writes demo data: hotels with rooms and users that hold a ticket
// and a live session.
type SeedService struct {
	repo   domain.HotelWriter
	tokens domain.TokenIssuer
	cache  domain.Cache
}

func NewSeedService(r domain.HotelWriter, t domain.TokenIssuer, cache domain.Cache) *SeedService {
	return &SeedService{repo: r, tokens: t, cache: cache}
}

// SeedHotel creates one hotel with a room per entry in capacities.
func (s *SeedService) SeedHotel(ctx context.Context, name, image string, capacities []int) (domain.Hotel, []domain.Room, error) {
	rooms := make([]domain.Room, 0, len(capacities))
	for i, c := range capacities {
		if c <= 0 {
			return domain.Hotel{}, nil, errors.Newf("room %d: capacity must be positive, got %d", i, c)
		}
		rooms = append(rooms, domain.Room{Name: fmt.Sprintf("Room %d", 101+i), Capacity: c})
	}

	h, rs, err := s.repo.CreateHotel(ctx, domain.Hotel{Name: name, Image: image}, rooms)
	if err != nil {
		return domain.Hotel{}, nil, errors.Wrapf(err, "seed hotel %q", name)
	}

	// the list changed; drop the cached snapshot
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelsKey)
	}
	return h, rs, nil
}

// GrantAccess creates a user with an enrollment and ticket, opens a session and
// returns its bearer token. A user that already exists keeps its ticket and
// only gets a fresh session.
func (s *SeedService) GrantAccess(ctx context.Context, g domain.AccessGrant) (string, error) {
	if g.Email == "" {
		return "", errors.New("grant access: email is required")
	}
	if g.Status == "" {
		g.Status = domain.TicketPaid
	}

	userID, err := s.repo.UserIDByEmail(ctx, g.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		userID, err = s.repo.CreateAccess(ctx, g)
		if err != nil {
			return "", errors.Wrapf(err, "create access for %s", g.Email)
		}
	case err != nil:
		return "", errors.Wrapf(err, "look up %s", g.Email)
	default:
		log.Info().Str("email", g.Email).Int64("user_id", userID).Msg("user exists, issuing new session")
	}
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", errors.Wrap(err, "issue token")
	}
	if _, err := s.repo.CreateSession(ctx, userID, token); err != nil {
		return "", errors.Wrap(err, "create session")
	}
	return token, nil
}
