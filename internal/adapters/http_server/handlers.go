// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"ticket_hotels/internal/adapters/observability"
	"ticket_hotels/internal/app"
	"ticket_hotels/internal/shared"
)

type Handlers struct {
	Q      *app.QueryService
	Auth   Authenticator
	Status shared.StatusConfig
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.Auth))
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{hotelId}", h.getHotelDetail)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	if status == http.StatusNoContent || status == http.StatusNotModified {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	hotels, err := h.Q.ListHotels(r.Context(), userID)
	outcome := app.OutcomeOf(err)
	observability.ObserveOutcome("list_hotels", outcome.String())
	if err != nil {
		h.writeOutcome(w, r, h.listStatus(outcome), outcome, err)
		return
	}
	writeJSON(w, r, toHotelResponses(hotels))
}

func (h *Handlers) getHotelDetail(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	d, err := h.Q.GetHotelDetail(r.Context(), userID, chi.URLParam(r, "hotelId"))
	outcome := app.OutcomeOf(err)
	observability.ObserveOutcome("get_hotel_detail", outcome.String())
	if err != nil {
		h.writeOutcome(w, r, h.detailStatus(outcome), outcome, err)
		return
	}
	writeJSON(w, r, toRoomResponse(d))
}

func (h *Handlers) listStatus(o app.Outcome) int {
	switch o {
	case app.OutcomeAccessDenied:
		return http.StatusUnauthorized
	case app.OutcomeNoEligibilityData:
		return h.Status.NoEligibility
	default:
		return h.Status.ListFailure
	}
}

func (h *Handlers) detailStatus(o app.Outcome) int {
	switch o {
	case app.OutcomeAccessDenied:
		return http.StatusUnauthorized
	case app.OutcomeFailure:
		return h.Status.DetailFailure
	default:
		// every other detail outcome reads as "nothing here"
		return http.StatusNotFound
	}
}

func (h *Handlers) writeOutcome(w http.ResponseWriter, r *http.Request, status int, o app.Outcome, err error) {
	log.Debug().
		Err(err).
		Str("outcome", o.String()).
		Int("status", status).
		Str("request_id", chimw.GetReqID(r.Context())).
		Msg("query not served")
	writeProblem(w, status, http.StatusText(status), o.String())
}
