package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-proxy/internal/services"
	"github.com/jstittsworth/fpl-proxy/pkg/logger"
)

// CacheStatusProvider reports the upstream caches.
type CacheStatusProvider interface {
	CacheStatus() []services.CacheSnapshot
}

type HealthHandler struct {
	caches  CacheStatusProvider
	breaker *services.CircuitBreakerService
	warmer  *services.CacheWarmer
}

// NewHealthHandler builds the liveness handler. breaker and warmer are nil when disabled.
func NewHealthHandler(caches CacheStatusProvider, breaker *services.CircuitBreakerService, warmer *services.CacheWarmer) *HealthHandler {
	return &HealthHandler{
		caches:  caches,
		breaker: breaker,
		warmer:  warmer,
	}
}

// GetHealth always returns 200 while the process is serving. Cache state is
// informational; a cold or stale cache is not unhealthy.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": logger.ServiceName,
		"caches":  h.caches.CacheStatus(),
	}
	if h.breaker != nil {
		body["circuit_breaker"] = h.breaker.Status()
	}
	if h.warmer != nil {
		body["cache_warmer"] = h.warmer.GetStatus()
	}

	c.JSON(http.StatusOK, body)
}
