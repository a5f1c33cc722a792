package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CACHE_TTL_SECONDS", "42")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("IMPORT_HOTEL_IDS", "3, 7,,x,-1,12")

	c := Load()
	assert.Equal(t, ":9999", c.HTTPAddr)
	assert.Equal(t, 42*time.Second, c.CacheTTL)
	assert.Equal(t, 0, c.RedisDB)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, []int64{3, 7, 12}, c.HotelIDs)
}
