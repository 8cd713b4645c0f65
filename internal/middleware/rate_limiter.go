package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiter is a store-backed fixed-window limiter: one Redis counter
// per client IP per window, so the count survives restarts and is shared
// across replicas. On Redis failure the request is allowed through.
func RateLimiter(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return keyedRateLimiter(rdb, "api", limit, window)
}

// LoginRateLimiter applies a tighter 20 req/min window to the login
// endpoint, on a separate counter from the global limiter.
func LoginRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return keyedRateLimiter(rdb, "login", 20, time.Minute)
}

func keyedRateLimiter(rdb *redis.Client, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", scope, ip, time.Now().Unix()/int64(window.Seconds()))

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter: redis unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			rejectRateLimited(c, window)
			return
		}
		c.Next()
	}
}

// rejectRateLimited aborts with 429 and a rate-limit-specific code so the
// body is distinguishable from a workflow state_conflict.
func rejectRateLimited(c *gin.Context, window time.Duration) {
	c.Header("Retry-After", window.String())
	c.AbortWithStatusJSON(http.StatusTooManyRequests,
		gin.H{"code": "rate_limited", "detail": "too many requests, retry shortly"})
}
