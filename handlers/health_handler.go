package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"wknd-backend/utils"
)

type HealthHandler struct {
	redis *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redis: redisClient}
}

// Health reports service liveness. Redis being down is reported but does
// not fail the endpoint.
func (h *HealthHandler) Health(e *core.RequestEvent) error {
	redisStatus := "OK"
	if err := utils.RedisHealthCheck(h.redis); err != nil {
		redisStatus = "unavailable"
	}

	return e.JSON(http.StatusOK, map[string]any{
		"status":    "OK",
		"redis":     redisStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
