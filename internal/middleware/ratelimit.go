package middleware

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/telbook/telbook-backend/internal/database"
	"github.com/telbook/telbook-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed counting window per IP.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the request budget per window.
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for window counters.
	RateLimitKeyPrefix = "telbook:ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs.
	BlockedIPKeyPrefix = "telbook:blocked_ip:"
	// BlockedIPDuration is how long an abusive IP stays blocked.
	BlockedIPDuration = 1 * time.Hour
)

var logLimiterDisabled sync.Once

// RateLimit enforces a fixed-window per-IP limit backed by Redis and
// temporarily blocks IPs that blow through it. Without Redis (not configured
// or unreachable) the limiter fails open: a directory lookup that works is
// worth more than one that rate-limits perfectly.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if database.RedisClient == nil {
			logLimiterDisabled.Do(func() {
				log.Println("⚠️  Rate limiting disabled: Redis not configured")
			})
			next.ServeHTTP(w, r)
			return
		}

		ipAddress := clientip.RealClientIP(r)
		ctx := context.Background()

		blockedKey := BlockedIPKeyPrefix + ipAddress
		blocked, err := database.RedisClient.Exists(ctx, blockedKey).Result()
		if err == nil && blocked > 0 {
			tooManyRequests(w)
			return
		}

		counterKey := RateLimitKeyPrefix + ipAddress
		count, err := database.RedisClient.Incr(ctx, counterKey).Result()
		if err != nil {
			// Redis down mid-flight; fail open.
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, counterKey, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			database.RedisClient.Set(ctx, blockedKey, "1", BlockedIPDuration)
			tooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func tooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"success":false,"message":"Too many requests. Please try again later."}`))
}
