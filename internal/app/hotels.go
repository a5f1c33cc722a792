package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"drivent/internal/domain"
)

const hotelsListKey = "hotels:all"

func hotelRoomsKey(id int64) string { return fmt.Sprintf("hotel:%d:rooms", id) }

// HotelService serves the hotel catalog to users whose ticket grants
// hotel access. Catalog reads go through the cache; eligibility never does.
type HotelService struct {
	hotels      domain.HotelRepository
	enrollments domain.EnrollmentRepository
	tickets     domain.TicketRepository
	cache       domain.Cache
	cacheTTL    time.Duration
}

func NewHotelService(
	h domain.HotelRepository,
	e domain.EnrollmentRepository,
	t domain.TicketRepository,
	c domain.Cache,
	ttl time.Duration,
) *HotelService {
	return &HotelService{hotels: h, enrollments: e, tickets: t, cache: c, cacheTTL: ttl}
}

// CheckEligibility returns nil when the user may see hotel data. Checks run
// in a fixed order and the first failing one decides the error kind.
func (s *HotelService) CheckEligibility(ctx context.Context, userID int64) error {
	enr, err := s.enrollments.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("enrollment not found")
	}
	if err != nil {
		return fmt.Errorf("find enrollment for user %d: %w", userID, err)
	}

	ticket, err := s.tickets.FindByEnrollmentID(ctx, enr.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("ticket not found")
	}
	if err != nil {
		return fmt.Errorf("find ticket for enrollment %d: %w", enr.ID, err)
	}

	switch {
	case ticket.Type.IsRemote:
		return domain.PaymentRequired("remote event does not include hotel")
	case !ticket.Type.IncludesHotel:
		return domain.PaymentRequired("ticket type does not include hotel")
	case ticket.Status != domain.TicketPaid:
		return domain.PaymentRequired("ticket not paid")
	}
	return nil
}

func (s *HotelService) ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error) {
	if err := s.CheckEligibility(ctx, userID); err != nil {
		return nil, err
	}

	var hotels []domain.Hotel
	if ok, _ := s.cacheGet(ctx, hotelsListKey, &hotels); ok && len(hotels) > 0 {
		return hotels, nil
	}

	hotels, err := s.hotels.FindAllHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("find hotels: %w", err)
	}
	if len(hotels) == 0 {
		return nil, domain.NotFound("no hotels")
	}
	s.cacheSet(ctx, hotelsListKey, hotels)
	return hotels, nil
}

func (s *HotelService) GetHotelWithRooms(ctx context.Context, userID, hotelID int64) (domain.Hotel, error) {
	if err := s.CheckEligibility(ctx, userID); err != nil {
		return domain.Hotel{}, err
	}

	key := hotelRoomsKey(hotelID)
	var h domain.Hotel
	if ok, _ := s.cacheGet(ctx, key, &h); ok && len(h.Rooms) > 0 {
		return h, nil
	}

	h, err := s.hotels.FindHotelWithRooms(ctx, hotelID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Hotel{}, domain.NotFound("hotel not found")
	}
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("find hotel %d: %w", hotelID, err)
	}
	if len(h.Rooms) == 0 {
		return domain.Hotel{}, domain.NotFound("hotel has no rooms")
	}
	s.cacheSet(ctx, key, h)
	return h, nil
}

func (s *HotelService) cacheGet(ctx context.Context, key string, dst any) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	}
	return ok && err == nil, err
}

func (s *HotelService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
