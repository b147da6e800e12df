package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter allows limit requests per client IP in each fixed window.
// Paths listed in exempt (route templates such as "/health") are never counted.
func RateLimiter(limit int, window time.Duration, exempt ...string) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
		skip    = make(map[string]bool, len(exempt))
	)
	for _, path := range exempt {
		skip[path] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skip[c.Path()] {
				return next(c)
			}

			now := time.Now()
			key := c.RealIP()

			mu.Lock()
			b, ok := buckets[key]
			if !ok || now.Sub(b.start) > window {
				b = &bucket{start: now}
				buckets[key] = b
			}

			if b.count >= limit {
				retryAfter := window - now.Sub(b.start)
				mu.Unlock()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++

			// Expired buckets are dropped once the map grows, so idle clients
			// do not accumulate for the life of the process.
			if len(buckets) > 1024 {
				for ip, other := range buckets {
					if now.Sub(other.start) > window {
						delete(buckets, ip)
					}
				}
			}
			mu.Unlock()

			return next(c)
		}
	}
}
