package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterPool hands out one token bucket per client IP and forgets buckets
// that have gone quiet, so long-running servers do not accumulate an entry
// for every address that ever hit the API.
type limiterPool struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(r rate.Limit, b int) *limiterPool {
	p := &limiterPool{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   b,
	}
	go p.janitor()
	return p
}

func (p *limiterPool) allow(ip string) bool {
	p.mu.Lock()
	bk, ok := p.buckets[ip]
	if !ok {
		bk = &bucket{lim: rate.NewLimiter(p.rate, p.burst)}
		p.buckets[ip] = bk
	}
	bk.lastSeen = time.Now()
	p.mu.Unlock()
	return bk.lim.Allow()
}

func (p *limiterPool) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		p.mu.Lock()
		for ip, bk := range p.buckets {
			if bk.lastSeen.Before(cutoff) {
				delete(p.buckets, ip)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimit throttles each client IP with a token bucket of r requests per
// second and burst b. Over-limit requests get a 429 in the API's error
// envelope.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	pool := newLimiterPool(r, b)
	return func(c *gin.Context) {
		if !pool.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}
