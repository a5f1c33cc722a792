package domain

import "context"

type HotelRepository interface {
	// Write paths (catalog import)
	UpsertHotel(ctx context.Context, h Hotel) error
	// ReplaceRooms makes rooms the hotel's full room set. It returns the ids
	// of other hotels that lost rooms to this one.
	ReplaceRooms(ctx context.Context, hotelID int64, rooms []Room) ([]int64, error)
	LogMiss(ctx context.Context, id int64, status int, reason string) error

	// Read paths
	FindAllHotels(ctx context.Context) ([]Hotel, error)
	// FindHotelWithRooms returns ErrNotFound when no hotel has that id.
	FindHotelWithRooms(ctx context.Context, id int64) (Hotel, error)
}

type EnrollmentRepository interface {
	FindByUserID(ctx context.Context, userID int64) (Enrollment, error)
}

type TicketRepository interface {
	// FindByEnrollmentID returns the ticket with its TicketType embedded.
	FindByEnrollmentID(ctx context.Context, enrollmentID int64) (Ticket, error)
}

type SessionRepository interface {
	FindSessionByToken(ctx context.Context, token string) (Session, error)
}

type CatalogClient interface {
	GetHotel(ctx context.Context, id int64) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
