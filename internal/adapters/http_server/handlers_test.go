package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"ticket_hotels/internal/adapters/auth"
	httpserver "ticket_hotels/internal/adapters/http_server"
	"ticket_hotels/internal/app"
	"ticket_hotels/internal/domain"
	"ticket_hotels/internal/shared"
)

var stamp = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type stubStore struct {
	err error
}

func (s stubStore) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Hotel{{ID: 7, Name: "Sea View", Image: "https://img/7.png", CreatedAt: stamp, UpdatedAt: stamp}}, nil
}

func (s stubStore) FindRoomWithHotel(ctx context.Context, roomID int64) (domain.RoomDetail, error) {
	if s.err != nil {
		return domain.RoomDetail{}, s.err
	}
	if roomID != 101 {
		return domain.RoomDetail{}, domain.ErrNotFound
	}
	return domain.RoomDetail{
		Room:  domain.Room{ID: 101, Name: "Room 101", Capacity: 2, HotelID: 7, Bookeds: 1, CreatedAt: stamp, UpdatedAt: stamp},
		Hotel: domain.Hotel{ID: 7, Name: "Sea View", Image: "https://img/7.png", CreatedAt: stamp, UpdatedAt: stamp},
	}, nil
}

// slowStore answers only once the request context is done.
type slowStore struct{}

func (slowStore) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowStore) FindRoomWithHotel(ctx context.Context, roomID int64) (domain.RoomDetail, error) {
	<-ctx.Done()
	return domain.RoomDetail{}, ctx.Err()
}

type stubTickets map[int64]domain.Ticket

func (s stubTickets) TicketByUserID(ctx context.Context, userID int64) (domain.Ticket, error) {
	t, ok := s[userID]
	if !ok {
		return domain.Ticket{}, domain.ErrNotFound
	}
	return t, nil
}

// token -> user id
type stubAuth map[string]int64

func (a stubAuth) Authenticate(ctx context.Context, token string) (int64, error) {
	id, ok := a[token]
	if !ok {
		return 0, auth.ErrInvalidToken
	}
	return id, nil
}

const (
	paidUser     int64 = 1
	reservedUser int64 = 2
	noTicketUser int64 = 3
)

type setup struct {
	store   domain.HotelStore
	opts    app.Options
	status  shared.StatusConfig
	limiter *rate.Limiter
	timeout time.Duration
}

func newServer(t *testing.T, s setup) http.Handler {
	t.Helper()
	if s.store == nil {
		s.store = stubStore{}
	}
	if s.timeout == 0 {
		s.timeout = 5 * time.Second
	}
	if s.status == (shared.StatusConfig{}) {
		s.status = shared.NewTestConfig().Status
	}
	tickets := stubTickets{
		paidUser:     {ID: 10, Status: domain.TicketPaid, Type: domain.TicketType{IncludesHotel: true}},
		reservedUser: {ID: 11, Status: domain.TicketReserved, Type: domain.TicketType{IncludesHotel: true}},
	}
	q := app.NewQueryService(s.store, tickets, nil, app.AccessPolicy{}, s.opts)

	srv := httpserver.New(s.timeout, s.limiter)
	srv.MountHandlers(&httpserver.Handlers{
		Q:      q,
		Auth:   stubAuth{"paid": paidUser, "reserved": reservedUser, "none": noTicketUser},
		Status: s.status,
	})
	return srv.Mux()
}

func get(h http.Handler, path, token string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newServer(t, setup{opts: app.DefaultOptions()})
	rec := get(h, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListHotels_Status(t *testing.T) {
	cases := map[string]struct {
		token  string
		store  domain.HotelStore
		status shared.StatusConfig
		want   int
	}{
		"missing token":      {token: "", want: http.StatusUnauthorized},
		"unknown token":      {token: "forged", want: http.StatusUnauthorized},
		"paid ticket":        {token: "paid", want: http.StatusOK},
		"reserved ticket":    {token: "reserved", want: http.StatusUnauthorized},
		"no ticket":          {token: "none", want: http.StatusNoContent},
		"store failure":      {token: "paid", store: stubStore{err: errors.New("db down")}, want: http.StatusNoContent},
		"failure remapped":   {token: "paid", store: stubStore{err: errors.New("db down")}, status: shared.StatusConfig{NoEligibility: 204, ListFailure: 500, DetailFailure: 404}, want: http.StatusInternalServerError},
		"no ticket remapped": {token: "none", status: shared.StatusConfig{NoEligibility: 404, ListFailure: 204, DetailFailure: 404}, want: http.StatusNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := newServer(t, setup{store: tc.store, opts: app.DefaultOptions(), status: tc.status})
			rec := get(h, "/hotels", tc.token)
			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusNoContent {
				assert.Empty(t, rec.Body.Bytes())
			}
		})
	}
}

func TestListHotels_Body(t *testing.T) {
	h := newServer(t, setup{opts: app.DefaultOptions()})
	rec := get(h, "/hotels", "paid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, float64(7), got[0]["id"])
	assert.Equal(t, "Sea View", got[0]["name"])
	assert.Equal(t, "https://img/7.png", got[0]["image"])
	assert.Equal(t, "2024-05-01T10:00:00.000Z", got[0]["createdAt"])
	assert.Equal(t, "2024-05-01T10:00:00.000Z", got[0]["updatedAt"])
}

func TestListHotels_NotModified(t *testing.T) {
	h := newServer(t, setup{opts: app.DefaultOptions()})
	first := get(h, "/hotels", "paid")
	require.Equal(t, http.StatusOK, first.Code)

	again := get(h, "/hotels", "paid", "If-None-Match", first.Header().Get("ETag"))
	assert.Equal(t, http.StatusNotModified, again.Code)
	assert.Empty(t, again.Body.Bytes())
}

func TestListHotels_ProblemBody(t *testing.T) {
	h := newServer(t, setup{opts: app.DefaultOptions()})
	rec := get(h, "/hotels", "reserved")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var p map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, float64(401), p["status"])
	assert.Equal(t, "access_denied", p["detail"])
}

func TestListHotels_PolicyDisabled(t *testing.T) {
	h := newServer(t, setup{opts: app.Options{EnforceList: false}})
	// no ticket lookup at all, so even a reserved ticket gets the list
	rec := get(h, "/hotels", "reserved")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetHotelDetail_Status(t *testing.T) {
	failing := stubStore{err: errors.New("db down")}
	cases := map[string]struct {
		path   string
		token  string
		store  domain.HotelStore
		opts   app.Options
		status shared.StatusConfig
		want   int
	}{
		"missing token":          {path: "/hotels/101", want: http.StatusUnauthorized},
		"found":                  {path: "/hotels/101", token: "paid", want: http.StatusOK},
		"unknown id":             {path: "/hotels/999", token: "paid", want: http.StatusNotFound},
		"non numeric":            {path: "/hotels/abc", token: "paid", want: http.StatusNotFound},
		"negative":               {path: "/hotels/-4", token: "paid", want: http.StatusNotFound},
		"zero":                   {path: "/hotels/0", token: "paid", want: http.StatusNotFound},
		"store failure":          {path: "/hotels/101", token: "paid", store: failing, want: http.StatusNotFound},
		"store failure remapped": {path: "/hotels/101", token: "paid", store: failing, status: shared.StatusConfig{NoEligibility: 204, ListFailure: 204, DetailFailure: 503}, want: http.StatusServiceUnavailable},
		"reserved unenforced":    {path: "/hotels/101", token: "reserved", want: http.StatusOK},
		"reserved enforced":      {path: "/hotels/101", token: "reserved", opts: app.Options{EnforceDetail: true}, want: http.StatusUnauthorized},
		"no ticket enforced":     {path: "/hotels/101", token: "none", opts: app.Options{EnforceDetail: true}, want: http.StatusNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := newServer(t, setup{store: tc.store, opts: tc.opts, status: tc.status})
			rec := get(h, tc.path, tc.token)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestGetHotelDetail_Body(t *testing.T) {
	h := newServer(t, setup{opts: app.DefaultOptions()})
	rec := get(h, "/hotels/101", "paid")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(101), got["id"])
	assert.Equal(t, "Room 101", got["name"])
	assert.Equal(t, float64(2), got["capacity"])
	assert.Equal(t, float64(7), got["hotelId"])
	assert.Equal(t, float64(1), got["bookeds"])

	hotel, ok := got["Hotel"].(map[string]any)
	require.True(t, ok, "detail must embed the parent hotel under \"Hotel\"")
	assert.Equal(t, float64(7), hotel["id"])
	assert.Equal(t, "Sea View", hotel["name"])
}

func TestRequestTimeout_MapsToFailureStatus(t *testing.T) {
	cases := map[string]struct {
		path   string
		status shared.StatusConfig
		want   int
	}{
		"list default":    {path: "/hotels", want: http.StatusNoContent},
		"detail default":  {path: "/hotels/101", want: http.StatusNotFound},
		"list remapped":   {path: "/hotels", status: shared.StatusConfig{NoEligibility: 204, ListFailure: 504, DetailFailure: 404}, want: http.StatusGatewayTimeout},
		"detail remapped": {path: "/hotels/101", status: shared.StatusConfig{NoEligibility: 204, ListFailure: 204, DetailFailure: 504}, want: http.StatusGatewayTimeout},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := newServer(t, setup{store: slowStore{}, opts: app.DefaultOptions(), status: tc.status, timeout: 50 * time.Millisecond})
			rec := get(h, tc.path, "paid")
			assert.Equal(t, tc.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "timeout")
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := newServer(t, setup{opts: app.DefaultOptions(), limiter: rate.NewLimiter(rate.Every(time.Hour), 1)})

	first := get(h, "/healthz", "")
	assert.Equal(t, http.StatusOK, first.Code)

	second := get(h, "/healthz", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}
