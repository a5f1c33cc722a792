// Package catalog is a client for the upstream hotel content API that feeds
// the local hotel catalog.
package catalog

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"drivent/internal/adapters/observability"
	"drivent/internal/domain"
)

const maxAttempts = 4

var (
	ErrNotFound     = &domain.Error{Kind: domain.KindNotFound, Msg: "catalog: not found"}
	ErrUnauthorized = &domain.Error{Kind: domain.KindUnauthorized, Msg: "catalog: unauthorized"}
	ErrForbidden    = &domain.Error{Kind: domain.KindForbidden, Msg: "catalog: forbidden"}
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// GetHotel fetches a hotel payload including its rooms.
func (c *Client) GetHotel(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "hotel", fmt.Sprintf("%s/hotels/%d?include=rooms", c.base, id), &out)
	return out, err
}

// get performs a rate-limited GET and decodes JSON into out. 429 and
// transient 5xx are retried, honoring Retry-After when present.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		wait, err := c.attempt(ctx, endpoint, url, out)
		if wait < 0 {
			return err
		}
		lastErr = err
		if i == maxAttempts-1 || !sleepCtx(ctx, wait) {
			break
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return lastErr
}

// attempt runs one request. A negative wait means the result is final;
// otherwise the caller may retry after wait.
func (c *Client) attempt(ctx context.Context, endpoint, url string, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return -1, err
	}
	req.Header.Set("X-API-Key", c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "drivent-importer/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("catalog", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return -1, ctx.Err()
		}
		return backoff(0), err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("catalog", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return -1, json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		return -1, ErrNotFound
	case http.StatusUnauthorized:
		return -1, ErrUnauthorized
	case http.StatusForbidden:
		return -1, ErrForbidden
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		_, _ = io.Copy(io.Discard, resp.Body)
		wait := retryAfter(resp)
		if wait == 0 {
			wait = backoff(1)
		}
		return wait, fmt.Errorf("remote %d", resp.StatusCode)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return -1, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff: 200ms base doubling per step, plus up to 50% jitter.
func backoff(step int) time.Duration {
	base := time.Duration(1<<step) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(0.5*float64(b[0])/255.0*float64(base))
}
