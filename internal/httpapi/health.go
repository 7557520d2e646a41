package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"booking-platform/pkg/logger"
	"booking-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Health serves liveness and readiness probes.
type Health struct {
	DB      *sql.DB
	Redis   redisPinger
	Timeout time.Duration
}

func (h Health) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings postgres and redis.
func (h Health) Ready(c *gin.Context) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx := c.Request.Context()

	checks := gin.H{"postgres": "ok", "redis": "ok"}
	ready := true

	if err := utils.HealthCheck(ctx, h.DB, timeout); err != nil {
		logger.FromGin(c).Warn("readiness: postgres", "error", err)
		checks["postgres"] = "unavailable"
		ready = false
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := h.Redis.Ping(pingCtx).Err(); err != nil {
		logger.FromGin(c).Warn("readiness: redis", "error", err)
		checks["redis"] = "unavailable"
		ready = false
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ready": ready, "checks": checks})
}
