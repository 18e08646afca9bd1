package ratelimiter

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. key identifies the caller; an empty key skips limiting. Limiter
// errors let the request through.
func Middleware(l Limiter, key func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}

		ok, retryAfter, err := l.Allow(c.Request.Context(), k)
		if err != nil {
			log.WithFields(log.Fields{"key": k, "error": err}).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			log.WithFields(log.Fields{"key": k, "path": c.FullPath()}).Warn("rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
