package mysql

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"ticket_hotels/internal/adapters/observability"
	"ticket_hotels/internal/domain"
)

// Repo implements the hotel store, ticket lookup, session store and the
// seeder's write paths on a single GORM handle.
type Repo struct{ db *gorm.DB }

func New(db *gorm.DB) *Repo { return &Repo{db: db} }

// ---- read paths ----

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	start := time.Now()
	var rows []hotelRow
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	if err = r.observe("list_hotels", start, err); err != nil {
		return nil, err
	}

	out := make([]domain.Hotel, len(rows))
	for i, h := range rows {
		out[i] = toHotel(h)
	}
	return out, nil
}

func (r *Repo) FindRoomWithHotel(ctx context.Context, roomID int64) (domain.RoomDetail, error) {
	start := time.Now()
	var row roomRow
	err := r.db.WithContext(ctx).
		Select(selectRoomWithBookeds).
		Preload("Hotel").
		Where("rooms.id = ?", roomID).
		Take(&row).Error
	if err = r.observe("find_room", start, err); err != nil {
		return domain.RoomDetail{}, err
	}
	if row.Hotel == nil {
		// dangling hotel_id; treat like a missing room
		return domain.RoomDetail{}, domain.ErrNotFound
	}
	return domain.RoomDetail{Room: toRoom(row), Hotel: toHotel(*row.Hotel)}, nil
}

func (r *Repo) TicketByUserID(ctx context.Context, userID int64) (domain.Ticket, error) {
	start := time.Now()
	var enr enrollmentRow
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&enr).Error
	if err = r.observe("find_enrollment", start, err); err != nil {
		return domain.Ticket{}, err
	}

	start = time.Now()
	var t ticketRow
	err = r.db.WithContext(ctx).
		Preload("TicketType").
		Where("enrollment_id = ?", enr.ID).
		Order("id DESC").
		Take(&t).Error
	if err = r.observe("find_ticket", start, err); err != nil {
		return domain.Ticket{}, err
	}
	return toTicket(t), nil
}

func (r *Repo) SessionByToken(ctx context.Context, token string) (domain.Session, error) {
	start := time.Now()
	var s sessionRow
	err := r.db.WithContext(ctx).Where("token = ?", token).Take(&s).Error
	if err = r.observe("find_session", start, err); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{ID: s.ID, UserID: s.UserID, Token: s.Token}, nil
}

// ---- write paths ----

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel, rooms []domain.Room) (domain.Hotel, []domain.Room, error) {
	start := time.Now()
	row := hotelRow{Name: h.Name, Image: h.Image, Rooms: make([]roomRow, len(rooms))}
	for i, rm := range rooms {
		row.Rooms[i] = roomRow{Name: rm.Name, Capacity: rm.Capacity}
	}
	// rooms are inserted in the same transaction as the hotel
	err := r.db.WithContext(ctx).Create(&row).Error
	if err = r.observe("create_hotel", start, err); err != nil {
		return domain.Hotel{}, nil, err
	}

	out := make([]domain.Room, len(row.Rooms))
	for i, rm := range row.Rooms {
		out[i] = toRoom(rm)
	}
	return toHotel(row), out, nil
}

func (r *Repo) UserIDByEmail(ctx context.Context, email string) (int64, error) {
	start := time.Now()
	var u userRow
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&u).Error
	if err = r.observe("find_user", start, err); err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (r *Repo) CreateAccess(ctx context.Context, g domain.AccessGrant) (int64, error) {
	start := time.Now()
	var userID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := userRow{Email: g.Email}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		enr := enrollmentRow{UserID: u.ID, Name: g.Email}
		if err := tx.Create(&enr).Error; err != nil {
			return err
		}
		tt := ticketTypeRow{Name: ticketTypeName(g), IsRemote: g.IsRemote, IncludesHotel: g.IncludesHotel}
		if err := tx.Create(&tt).Error; err != nil {
			return err
		}
		t := ticketRow{TicketTypeID: tt.ID, EnrollmentID: enr.ID, Status: string(g.Status)}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		userID = u.ID
		return nil
	})
	if err = r.observe("create_access", start, err); err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *Repo) CreateSession(ctx context.Context, userID int64, token string) (domain.Session, error) {
	start := time.Now()
	s := sessionRow{UserID: userID, Token: token}
	err := r.db.WithContext(ctx).Create(&s).Error
	if err = r.observe("create_session", start, err); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{ID: s.ID, UserID: s.UserID, Token: s.Token}, nil
}

// ---- helpers ----

// observe records the call and translates gorm errors into domain errors.
func (r *Repo) observe(op string, start time.Time, err error) error {
	switch {
	case err == nil:
		observability.ObserveStore(op, "ok", time.Since(start))
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		observability.ObserveStore(op, "not_found", time.Since(start))
		return domain.ErrNotFound
	default:
		observability.ObserveStore(op, "error", time.Since(start))
		return errors.Wrapf(err, "mysql: %s", op)
	}
}

func ticketTypeName(g domain.AccessGrant) string {
	switch {
	case g.IsRemote:
		return "Remote"
	case g.IncludesHotel:
		return "In person + hotel"
	default:
		return "In person"
	}
}

func toHotel(h hotelRow) domain.Hotel {
	return domain.Hotel{ID: h.ID, Name: h.Name, Image: h.Image, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt}
}

func toRoom(r roomRow) domain.Room {
	return domain.Room{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		HotelID:   r.HotelID,
		Bookeds:   r.Bookeds,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toTicket(t ticketRow) domain.Ticket {
	return domain.Ticket{
		ID:           t.ID,
		EnrollmentID: t.EnrollmentID,
		Status:       domain.TicketStatus(t.Status),
		Type: domain.TicketType{
			ID:            t.TicketType.ID,
			Name:          t.TicketType.Name,
			Price:         t.TicketType.Price,
			IsRemote:      t.TicketType.IsRemote,
			IncludesHotel: t.TicketType.IncludesHotel,
		},
	}
}
