package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName  = "orders-service"
	readyTimeout = 2 * time.Second
)

var startTime = time.Now()

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// Ready handles GET /ready
func (h *Handlers) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("check", check.Name), zap.Error(err))
			checks[check.Name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[check.Name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}

	c.JSON(status, gin.H{
		"status":  state,
		"service": serviceName,
		"checks":  checks,
	})
}

// Live handles GET /live
func (h *Handlers) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "alive",
		"uptime_seconds": time.Since(startTime).Seconds(),
	})
}

// Version handles GET /version
func (h *Handlers) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.version,
		"service":    serviceName,
		"go_version": runtime.Version(),
		"started_at": startTime.UTC().Format(time.RFC3339),
	})
}

// Debug handles GET /debug
func (h *Handlers) Debug(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"features": gin.H{
			"enable_order_caching": h.config.Features.EnableOrderCaching,
			"enable_order_events":  h.config.Features.EnableOrderEvents,
			"enable_payments_sync": h.config.Features.EnablePaymentsSync,
		},
		"config": gin.H{
			"environment":   h.config.Environment,
			"server_port":   h.config.Server.Port,
			"database_host": h.config.Database.Host,
			"redis_host":    h.config.Redis.Host,
			"kafka_brokers": h.config.Kafka.Brokers,
		},
		"runtime": gin.H{
			"goroutines":       runtime.NumGoroutine(),
			"heap_alloc_bytes": m.HeapAlloc,
			"gc_runs":          m.NumGC,
		},
	})
}
