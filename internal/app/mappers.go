package app

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"drivent/internal/domain"
)

/********** alias registries (single source of truth) **********/

var hotelAliases = map[string][]string{
	"id":    {"hotel_id", "id"},
	"name":  {"name", "hotel_name", "title"},
	"image": {"image", "image_url", "main_image_th", "thumbnail", "photo.url"},
}

var roomAliases = map[string][]string{
	"id":       {"id", "room_id"},
	"name":     {"name", "room_name", "title"},
	"capacity": {"capacity", "max_occupancy", "occupancy.max", "beds"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

/********** hotel mapper **********/

// mapHotel converts an upstream hotel payload. Rooms without an id are
// dropped since they cannot be upserted idempotently.
func mapHotel(id int64, p map[string]any) domain.Hotel {
	if v := firstInt64Flexible(p, hotelAliases["id"]...); v != nil && *v != id {
		log.Warn().Int64("requested", id).Int64("payload", *v).Msg("hotel id mismatch; keeping requested id")
	}

	h := domain.Hotel{
		ID:    id,
		Name:  firstNonEmptyAlias(p, hotelAliases, "name"),
		Image: firstNonEmptyAlias(p, hotelAliases, "image"),
	}

	raw, _ := lookupAny(p, "rooms").([]any)
	for _, it := range raw {
		rm, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rid := firstInt64Flexible(rm, roomAliases["id"]...)
		if rid == nil {
			log.Debug().Int64("hotel", id).Msg("skipping room without id")
			continue
		}
		capacity := 0
		if c := firstInt64Flexible(rm, roomAliases["capacity"]...); c != nil {
			capacity = int(*c)
		}
		h.Rooms = append(h.Rooms, domain.Room{
			ID:       *rid,
			Name:     firstNonEmptyAlias(rm, roomAliases, "name"),
			Capacity: capacity,
			HotelID:  id,
		})
	}
	return h
}
