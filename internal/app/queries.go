package app

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"ticket_hotels/internal/domain"
)

const hotelsKey = "hotels:all"

// sharedLoadTimeout bounds a cache-miss load that several callers wait on.
// It runs detached from any single caller's context.
const sharedLoadTimeout = 10 * time.Second

// Options toggles eligibility enforcement per operation.
type Options struct {
	EnforceList   bool
	EnforceDetail bool
	CacheTTL      time.Duration
}

func DefaultOptions() Options {
	return Options{EnforceList: true, EnforceDetail: false, CacheTTL: time.Minute}
}

type QueryService struct {
	hotels  domain.HotelStore
	tickets domain.TicketLookup
	cache   domain.Cache
	policy  AccessPolicy
	opts    Options
	sf      singleflight.Group
}

// NewQueryService wires the service. cache may be nil.
func NewQueryService(h domain.HotelStore, t domain.TicketLookup, c domain.Cache, p AccessPolicy, opts Options) *QueryService {
	return &QueryService{hotels: h, tickets: t, cache: c, policy: p, opts: opts}
}

// ListHotels returns every hotel the caller may see. An empty store yields an
// empty, non-nil slice.
func (s *QueryService) ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error) {
	const op = "app.ListHotels"

	if s.opts.EnforceList {
		if err := s.checkEligibility(ctx, op, userID); err != nil {
			return nil, err
		}
	}

	hs, err := cached(ctx, s, hotelsKey, s.hotels.ListHotels)
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]domain.Hotel, len(hs))
	copy(out, hs)
	return out, nil
}

// GetHotelDetail resolves rawID as a room id and returns the room with its hotel.
func (s *QueryService) GetHotelDetail(ctx context.Context, userID int64, rawID string) (domain.RoomDetail, error) {
	const op = "app.GetHotelDetail"

	id, ok := ParseResourceID(rawID)
	if !ok {
		return domain.RoomDetail{}, ErrInvalidIdentifier
	}

	if s.opts.EnforceDetail {
		if err := s.checkEligibility(ctx, op, userID); err != nil {
			return domain.RoomDetail{}, err
		}
	}

	// not cached: bookeds must reflect bookings made since the last read
	d, err := s.hotels.FindRoomWithHotel(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RoomDetail{}, ErrNotFound
		}
		return domain.RoomDetail{}, s.fail(op, err)
	}
	return d, nil
}

// ParseResourceID accepts positive base-10 integers only.
func ParseResourceID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *QueryService) checkEligibility(ctx context.Context, op string, userID int64) error {
	t, err := s.tickets.TicketByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNoEligibilityData
		}
		return s.fail(op, err)
	}
	if !s.policy.CanViewHotels(&t) {
		return ErrAccessDenied
	}
	return nil
}

func (s *QueryService) fail(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("collaborator call failed")
	return failure(op, err)
}

// cached reads key through the cache when one is configured; concurrent misses
// share a single load. Cache errors fall through to the loader. A caller whose
// context ends stops waiting without cancelling the load for the others.
func cached[T any](ctx context.Context, s *QueryService, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return load(ctx)
	}

	var hit T
	if ok, _ := s.cache.Get(ctx, key, &hit); ok {
		return hit, nil
	}

	ch := s.sf.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		fresh, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(loadCtx, key, fresh, int(s.opts.CacheTTL.Seconds()))
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
