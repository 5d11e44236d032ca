package app

import "ticket_hotels/internal/domain"

// AccessPolicy decides whether a ticket holder may see hotel data.
// It has no side effects and never touches a store.
type AccessPolicy struct {
	// RequireHotel also denies ticket types that do not include lodging.
	RequireHotel bool
}

func (p AccessPolicy) CanViewHotels(t *domain.Ticket) bool {
	if t == nil {
		return false
	}
	if t.Type.IsRemote || t.Status == domain.TicketReserved {
		return false
	}
	if p.RequireHotel && !t.Type.IncludesHotel {
		return false
	}
	return true
}
