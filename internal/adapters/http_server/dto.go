package httpserver

import (
	"time"

	"drivent/internal/domain"
)

// Millisecond precision UTC, e.g. 2026-01-02T03:04:05.000Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func isoTime(t time.Time) string { return t.UTC().Format(isoMillis) }

type hotelResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type roomResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	HotelID   int64  `json:"hotelId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type hotelWithRoomsResponse struct {
	hotelResponse
	Rooms []roomResponse `json:"Rooms"`
}

func toHotelResponse(h domain.Hotel) hotelResponse {
	return hotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		Image:     h.Image,
		CreatedAt: isoTime(h.CreatedAt),
		UpdatedAt: isoTime(h.UpdatedAt),
	}
}

func toHotelsResponse(hs []domain.Hotel) []hotelResponse {
	out := make([]hotelResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, toHotelResponse(h))
	}
	return out
}

func toHotelWithRoomsResponse(h domain.Hotel) hotelWithRoomsResponse {
	rooms := make([]roomResponse, 0, len(h.Rooms))
	for _, rm := range h.Rooms {
		rooms = append(rooms, roomResponse{
			ID:        rm.ID,
			Name:      rm.Name,
			Capacity:  rm.Capacity,
			HotelID:   rm.HotelID,
			CreatedAt: isoTime(rm.CreatedAt),
			UpdatedAt: isoTime(rm.UpdatedAt),
		})
	}
	return hotelWithRoomsResponse{hotelResponse: toHotelResponse(h), Rooms: rooms}
}
