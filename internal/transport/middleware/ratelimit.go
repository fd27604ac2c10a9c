package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/heartmarshall/community-engine/pkg/ctxutil"
)

// idleBucketTTL is how long an untouched bucket survives cleanup.
const idleBucketTTL = 10 * time.Minute

// RateLimiter throttles each caller with a token bucket. Callers that name
// themselves through ActorHeader share one bucket per name across addresses;
// anonymous callers are limited per client IP.
type RateLimiter struct {
	buckets sync.Map // map[string]*bucket
	stop    chan struct{}
	now     func() time.Time
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	perSec   float64
	seen     time.Time
}

// NewRateLimiter creates a rate limiter that drops idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{}), now: time.Now}
	go rl.sweepLoop(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware allowing perMinute requests per caller. A
// non-positive perMinute disables limiting. Actor must run earlier in the
// chain for per-user keys to apply.
func (rl *RateLimiter) Limit(perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		if !rl.take(callerKey(c), perMinute) {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(perMinute)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"code": "RATE_LIMITED", "message": "rate limit exceeded"},
			})
			return
		}

		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	if name, ok := ctxutil.ActorFromCtx(c.Request.Context()); ok {
		return "user:" + name
	}
	return "ip:" + c.ClientIP()
}

// retryAfterSeconds is the time until one token refills, rounded up.
func retryAfterSeconds(perMinute int) int {
	return int(math.Ceil(60 / float64(perMinute)))
}

func (rl *RateLimiter) take(key string, perMinute int) bool {
	now := rl.now()
	capacity := float64(perMinute)

	val, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:   capacity,
		capacity: capacity,
		perSec:   capacity / 60,
		seen:     now,
	})
	return val.(*bucket).take(now)
}

func (b *bucket) take(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.seen).Seconds(); elapsed > 0 {
		b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.perSec)
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *bucket) idleSince(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.Sub(b.seen)
}

// sweep removes buckets untouched for idleBucketTTL.
func (rl *RateLimiter) sweep() {
	now := rl.now()
	rl.buckets.Range(func(key, value any) bool {
		if value.(*bucket).idleSince(now) > idleBucketTTL {
			rl.buckets.Delete(key)
		}
		return true
	})
}

func (rl *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}
