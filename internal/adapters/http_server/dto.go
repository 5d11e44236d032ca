package httpserver

import (
	"time"

	"ticket_hotels/internal/domain"
)

// ISO-8601 with milliseconds, always UTC ("2024-05-01T10:00:00.000Z").
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type hotelResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type roomResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Capacity  int           `json:"capacity"`
	HotelID   int64         `json:"hotelId"`
	Bookeds   int           `json:"bookeds"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
	Hotel     hotelResponse `json:"Hotel"`
}

func isoTime(t time.Time) string { return t.UTC().Format(isoMillis) }

func toHotelResponse(h domain.Hotel) hotelResponse {
	return hotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		Image:     h.Image,
		CreatedAt: isoTime(h.CreatedAt),
		UpdatedAt: isoTime(h.UpdatedAt),
	}
}

func toHotelResponses(hs []domain.Hotel) []hotelResponse {
	out := make([]hotelResponse, len(hs))
	for i, h := range hs {
		out[i] = toHotelResponse(h)
	}
	return out
}

func toRoomResponse(d domain.RoomDetail) roomResponse {
	return roomResponse{
		ID:        d.ID,
		Name:      d.Name,
		Capacity:  d.Capacity,
		HotelID:   d.HotelID,
		Bookeds:   d.Bookeds,
		CreatedAt: isoTime(d.CreatedAt),
		UpdatedAt: isoTime(d.UpdatedAt),
		Hotel:     toHotelResponse(d.Hotel),
	}
}
