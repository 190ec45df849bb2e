package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"upsidedown/internal/logging"
)

// clientLimiter is one client's token bucket and when it was last used.
type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// allowRequest spends a token from key's bucket, creating the bucket on
// first use.
func (app *App) allowRequest(key string) bool {
	now := app.now()
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	cl, ok := app.Limiters[key]
	if !ok {
		every := rate.Limit(max(app.Config.RateLimitRPS, 1))
		cl = &clientLimiter{lim: rate.NewLimiter(every, app.Config.RateLimitBurst)}
		app.Limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.lim.AllowN(now, 1)
}

// evictIdleLimiters forgets buckets unused for longer than SessionTimeout.
func (app *App) evictIdleLimiters(now time.Time) int {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	n := 0
	for key, cl := range app.Limiters {
		if now.Sub(cl.lastSeen) > app.Config.SessionTimeout {
			delete(app.Limiters, key)
			n++
		}
	}
	return n
}

// rateLimitMiddleware rejects clients that spend their burst faster than
// RATE_LIMIT_RPS refills it. HTMX clients also get an HX-Trigger event.
func (app *App) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if app.allowRequest(ip) {
			c.Next()
			return
		}
		logWarnCtx(c.Request.Context(), "Rate limit hit by %s on %s", ip, c.Request.URL.Path)
		if c.GetHeader("HX-Request") == "true" {
			c.Header("HX-Trigger", "rate-limit-exceeded")
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many guesses. Slow down."})
	}
}

// requestIDMiddleware tags each request context with an id, reusing the
// caller's X-Request-Id when present.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.Request.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), reqID))
		c.Header("X-Request-Id", reqID)
		c.Next()
	}
}
