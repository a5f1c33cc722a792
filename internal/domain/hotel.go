package domain

import "time"

// Hotel is a read-only catalog entry. Rooms is only populated by
// HotelRepository.FindHotelWithRooms.
type Hotel struct {
	ID        int64
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Rooms     []Room
}

type Room struct {
	ID        int64
	Name      string
	Capacity  int
	HotelID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
