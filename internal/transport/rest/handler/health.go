package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports component health for the API, MongoDB and
// Redis.
type HealthHandler struct {
	mongoClient *mongo.Client
	redisClient *redis.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		redisClient: redisClient,
	}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{
		"api":      "healthy",
		"database": "healthy",
		"redis":    "healthy",
	}
	status := "healthy"

	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		components["database"] = "unreachable"
		status = "degraded"
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		components["redis"] = "unreachable"
		status = "degraded"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
