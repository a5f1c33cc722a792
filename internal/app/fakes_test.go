package app_test

import (
	"context"
	"errors"

	"drivent/internal/domain"
)

// ---- fakes ----

type fakeHotels struct {
	hotels    []domain.Hotel
	withRooms map[int64]domain.Hotel
	err       error
	calls     int

	upserted  []domain.Hotel
	rooms     map[int64][]domain.Room
	movedFrom []int64
	misses    map[int64]int
}

func (f *fakeHotels) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	f.upserted = append(f.upserted, h)
	return nil
}
func (f *fakeHotels) ReplaceRooms(ctx context.Context, hotelID int64, rooms []domain.Room) ([]int64, error) {
	if f.rooms == nil {
		f.rooms = map[int64][]domain.Room{}
	}
	f.rooms[hotelID] = rooms
	return f.movedFrom, nil
}
func (f *fakeHotels) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	if f.misses == nil {
		f.misses = map[int64]int{}
	}
	f.misses[id] = status
	return nil
}
func (f *fakeHotels) FindAllHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.calls++
	return f.hotels, f.err
}
func (f *fakeHotels) FindHotelWithRooms(ctx context.Context, id int64) (domain.Hotel, error) {
	f.calls++
	if f.err != nil {
		return domain.Hotel{}, f.err
	}
	h, ok := f.withRooms[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

type fakeEnrollments struct {
	byUser map[int64]domain.Enrollment
	err    error
}

func (f *fakeEnrollments) FindByUserID(ctx context.Context, userID int64) (domain.Enrollment, error) {
	if f.err != nil {
		return domain.Enrollment{}, f.err
	}
	e, ok := f.byUser[userID]
	if !ok {
		return domain.Enrollment{}, domain.ErrNotFound
	}
	return e, nil
}

type fakeTickets struct {
	byEnrollment map[int64]domain.Ticket
}

func (f *fakeTickets) FindByEnrollmentID(ctx context.Context, enrollmentID int64) (domain.Ticket, error) {
	t, ok := f.byEnrollment[enrollmentID]
	if !ok {
		return domain.Ticket{}, domain.ErrNotFound
	}
	return t, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

type fakeCatalog struct {
	payloads map[int64]map[string]any
	err      error
}

func (f *fakeCatalog) GetHotel(ctx context.Context, id int64) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.payloads[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

var errBoom = errors.New("boom")
