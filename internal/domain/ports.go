package domain

import "context"

type HotelStore interface {
	ListHotels(ctx context.Context) ([]Hotel, error)
	FindRoomWithHotel(ctx context.Context, roomID int64) (RoomDetail, error)
}

type TicketLookup interface {
	// TicketByUserID returns ErrNotFound when the user has no enrollment or no ticket.
	TicketByUserID(ctx context.Context, userID int64) (Ticket, error)
}

type SessionStore interface {
	SessionByToken(ctx context.Context, token string) (Session, error)
}

// Write paths, used by the seeder only.
type HotelWriter interface {
	CreateHotel(ctx context.Context, h Hotel, rooms []Room) (Hotel, []Room, error)
	// UserIDByEmail returns ErrNotFound when no user has the email.
	UserIDByEmail(ctx context.Context, email string) (int64, error)
	CreateAccess(ctx context.Context, g AccessGrant) (userID int64, err error)
	CreateSession(ctx context.Context, userID int64, token string) (Session, error)
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
