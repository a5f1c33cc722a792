package app

import (
	"context"
	"fmt"

	"drivent/internal/domain"
)

// ImportService keeps the read-only hotel catalog in sync with the upstream
// content API.
type ImportService struct {
	catalog domain.CatalogClient
	repo    domain.HotelRepository
	cache   domain.Cache
}

func NewImportService(c domain.CatalogClient, r domain.HotelRepository, cache domain.Cache) *ImportService {
	return &ImportService{catalog: c, repo: r, cache: cache}
}

func (s *ImportService) ImportHotel(ctx context.Context, id int64) error {
	p, err := s.catalog.GetHotel(ctx, id)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindNotFound:
			// record miss and drop stale cache entries
			_ = s.repo.LogMiss(ctx, id, 404, "not found")
			s.invalidate(ctx, id)
			return nil
		case domain.KindUnauthorized:
			_ = s.repo.LogMiss(ctx, id, 401, "unauthorized")
			s.invalidate(ctx, id)
			return nil
		case domain.KindForbidden:
			_ = s.repo.LogMiss(ctx, id, 403, "forbidden")
			s.invalidate(ctx, id)
			return nil
		}
		return err
	}

	h := mapHotel(id, p)
	if h.Name == "" {
		_ = s.repo.LogMiss(ctx, id, 422, "missing name")
		return nil
	}

	// Parent upsert first to satisfy the rooms FK.
	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		return fmt.Errorf("upsert hotel %d: %w", id, err)
	}
	moved, err := s.repo.ReplaceRooms(ctx, id, h.Rooms)
	if err != nil {
		return fmt.Errorf("replace rooms for %d: %w", id, err)
	}
	s.invalidate(ctx, append([]int64{id}, moved...)...)
	return nil
}

func (s *ImportService) invalidate(ctx context.Context, ids ...int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, hotelsListKey)
	for _, id := range ids {
		_ = s.cache.Del(ctx, hotelRoomsKey(id))
	}
}
