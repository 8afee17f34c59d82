package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
)

const (
	// RateLimitWindow is the fixed counting window.
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is how many requests an IP may make per window.
	RateLimitMaxRequests = 120
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RedisRateLimit counts requests per IP in a fixed Redis window so the limit
// is shared across instances. Redis errors let the request through.
func RedisRateLimit(client *redis.Client, max int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := RateLimitKeyPrefix + clientip.LimitKey(r)

			pipe := client.TxPipeline()
			incr := pipe.Incr(r.Context(), key)
			pipe.ExpireNX(r.Context(), key, window)
			if _, err := pipe.Exec(r.Context()); err != nil {
				log.Printf("rate limit: redis error, allowing request: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if incr.Val() > max {
				tooManyRequests(w, "Too many requests. Please slow down.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
