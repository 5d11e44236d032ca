package domain

import "time"

type Hotel struct {
	ID        int64
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Room struct {
	ID        int64
	Name      string
	Capacity  int
	HotelID   int64
	Bookeds   int // active bookings, computed by the store
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomDetail is a room with its parent hotel embedded.
type RoomDetail struct {
	Room
	Hotel Hotel
}
