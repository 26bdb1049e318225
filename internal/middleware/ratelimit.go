package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/types"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(rateLimit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rateLimit,
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Throttle allows requestsPerMinute requests per client, with the whole
// allowance available as a burst. Authenticated clients are keyed by user,
// others by IP.
func Throttle(requestsPerMinute int) gin.HandlerFunc {
	limiter := NewRateLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)

	return func(ctx *gin.Context) {
		key := "ip:" + ctx.ClientIP()
		if value, ok := ctx.Get(types.ContextUserKey); ok {
			if user, ok := value.(AuthenticatedUser); ok {
				key = "user:" + user.Email
			}
		}

		if !limiter.getLimiter(key).Allow() {
			abort(ctx, apperr.TooManyRequests())
			return
		}

		ctx.Next()
	}
}
