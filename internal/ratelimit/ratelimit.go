package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"booking-platform/pkg/logger"
	"booking-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Rule is a fixed-window budget of Limit requests per Window.
type Rule struct {
	Name   string
	Limit  int64
	Window time.Duration
}

var (
	Global   = Rule{Name: "global", Limit: 10, Window: 6 * time.Second}
	Register = Rule{Name: "register", Limit: 3, Window: time.Minute}
	Login    = Rule{Name: "login", Limit: 5, Window: time.Minute}
)

type Decision struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter counts requests per rule and client in redis.
type Limiter struct {
	rdb    redis.Scripter
	prefix string
}

func New(rdb redis.Scripter) *Limiter {
	return &Limiter{rdb: rdb, prefix: "rl"}
}

func (l *Limiter) key(rule Rule, subject string) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, rule.Name, subject)
}

// Allow counts one request by subject against rule.
func (l *Limiter) Allow(ctx context.Context, rule Rule, subject string) (Decision, error) {
	hit, err := utils.HitFixedWindow(ctx, l.rdb, l.key(rule, subject), rule.Window)
	if err != nil {
		return Decision{Allowed: true, Limit: rule.Limit, Remaining: rule.Limit}, err
	}

	d := Decision{
		Allowed:   hit.Count <= rule.Limit,
		Limit:     rule.Limit,
		Remaining: max(rule.Limit-hit.Count, 0),
	}
	if !d.Allowed {
		d.RetryAfter = hit.ResetIn
	}
	return d, nil
}

// Middleware throttles by client IP. When redis is unavailable the request
// goes through and the failure is logged.
func (l *Limiter) Middleware(rule Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := l.Allow(c.Request.Context(), rule, c.ClientIP())
		if err != nil {
			logger.FromGin(c).Warn("rate limiter unavailable, allowing request",
				"rule", rule.Name,
				"error", err,
			)
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.FormatInt(d.Limit, 10))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))

		if !d.Allowed {
			h.Set("Retry-After", strconv.Itoa(retrySeconds(d.RetryAfter)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			return
		}
		c.Next()
	}
}

func retrySeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}
