package domain

type TicketStatus string

const (
	TicketReserved TicketStatus = "RESERVED"
	TicketPaid     TicketStatus = "PAID"
)

type TicketType struct {
	ID            int64
	Name          string
	Price         int
	IsRemote      bool
	IncludesHotel bool
}

type Ticket struct {
	ID           int64
	EnrollmentID int64
	Status       TicketStatus
	Type         TicketType
}

type Session struct {
	ID     int64
	UserID int64
	Token  string
}

// AccessGrant describes a user that should be able to reach the API:
// user, enrollment, ticket type and ticket are created together.
type AccessGrant struct {
	Email         string
	Status        TicketStatus
	IsRemote      bool
	IncludesHotel bool
}
