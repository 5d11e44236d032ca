package mysql

import "time"

// Row types mirror the tables. Only hotels, rooms, bookings, tickets and
// sessions are read by the API; the rest exist so the seeder and tests can
// build a consistent graph.

type userRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

type sessionRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"index;not null"`
	Token     string `gorm:"type:varchar(512);uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sessionRow) TableName() string { return "sessions" }

type enrollmentRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (enrollmentRow) TableName() string { return "enrollments" }

type ticketTypeRow struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:255;not null"`
	Price         int    `gorm:"not null"`
	IsRemote      bool   `gorm:"not null"`
	IncludesHotel bool   `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ticketTypeRow) TableName() string { return "ticket_types" }

type ticketRow struct {
	ID           int64         `gorm:"primaryKey;autoIncrement"`
	TicketTypeID int64         `gorm:"index;not null"`
	EnrollmentID int64         `gorm:"index;not null"`
	Status       string        `gorm:"size:16;not null"`
	TicketType   ticketTypeRow `gorm:"foreignKey:TicketTypeID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ticketRow) TableName() string { return "tickets" }

type hotelRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null"`
	Image     string    `gorm:"size:1024;not null"`
	Rooms     []roomRow `gorm:"foreignKey:HotelID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (hotelRow) TableName() string { return "hotels" }

type roomRow struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"size:255;not null"`
	Capacity int    `gorm:"not null"`
	HotelID  int64  `gorm:"index;not null"`
	// filled by selectRoomWithBookeds; never written or migrated
	Bookeds   int       `gorm:"->;-:migration"`
	Hotel     *hotelRow `gorm:"foreignKey:HotelID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (roomRow) TableName() string { return "rooms" }

type bookingRow struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"index;not null"`
	RoomID    int64 `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (bookingRow) TableName() string { return "bookings" }
