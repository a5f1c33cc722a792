package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"drivent/internal/adapters/auth"
	"drivent/internal/adapters/observability"
	"drivent/internal/domain"
)

type HotelService interface {
	ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error)
	GetHotelWithRooms(ctx context.Context, userID, hotelID int64) (domain.Hotel, error)
}

type Handlers struct {
	Hotels HotelService
	Auth   TokenVerifier
}

var validate = validator.New()

// Failure bodies are always an empty JSON array.
var emptyList = []struct{}{}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/hotels", func(r chi.Router) {
		r.Use(Authenticate(h.Auth))
		r.Get("/", h.listHotels)
		r.Get("/{hotelId}", h.getHotelRooms)
	})
}

// statusFor maps every error kind to a status code.
func statusFor(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindPaymentRequired:
		return http.StatusPaymentRequired
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	observability.ObserveAccess(routePattern(r), kind.String())
	if kind == domain.KindInternal {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("hotel request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("hotel request denied")
	}
	writeJSON(w, statusFor(kind), emptyList)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func writeOK(w http.ResponseWriter, r *http.Request, v any) {
	etag, body, err := calcETagAndBody(v)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	observability.ObserveAccess(routePattern(r), "ok")

	w.Header().Set("ETag", etag)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotel body")
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeFailure(w, r, domain.ErrUnauthorized)
		return
	}
	hotels, err := h.Hotels.ListHotels(r.Context(), userID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, r, toHotelsResponse(hotels))
}

func (h *Handlers) getHotelRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeFailure(w, r, domain.ErrUnauthorized)
		return
	}
	hotelID, err := strconv.ParseInt(chi.URLParam(r, "hotelId"), 10, 64)
	if err != nil || validate.Var(hotelID, "required,gt=0") != nil {
		writeFailure(w, r, domain.ErrBadRequest)
		return
	}

	hotel, err := h.Hotels.GetHotelWithRooms(r.Context(), userID, hotelID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, r, toHotelWithRoomsResponse(hotel))
}
