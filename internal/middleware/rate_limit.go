// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Per-client token buckets keyed by IP. Traffic here is read-heavy catalog
// browsing, so the general tier is generous; credential and upload endpoints
// get much tighter budgets.
const (
	generalRate  = 20 // requests per second, burst 40: page + API browsing
	generalBurst = 40

	authPerMinute = 10 // login/register/refresh attempts
	authBurst     = 10

	uploadsPerMinute = 6 // image uploads
	uploadBurst      = 3

	clientIdleTTL = 5 * time.Minute
	reapInterval  = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rate    rate.Limit
	burst   int
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		clients: make(map[string]*client),
		rate:    r,
		burst:   burst,
	}
	go rl.reap()
	return rl
}

// reap drops buckets for clients idle longer than clientIdleTTL so the map
// does not grow with every IP ever seen.
func (rl *IPRateLimiter) reap() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, cl := range rl.clients {
			if time.Since(cl.lastSeen) > clientIdleTTL {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many requests. Please try again later.",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

var (
	generalLimiter = NewIPRateLimiter(rate.Limit(generalRate), generalBurst)
	authLimiter    = NewIPRateLimiter(rate.Every(time.Minute/authPerMinute), authBurst)
	uploadLimiter  = NewIPRateLimiter(rate.Every(time.Minute/uploadsPerMinute), uploadBurst)
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.Middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.Middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.Middleware()
}
