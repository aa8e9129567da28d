package handlers

import "net/http"

// HealthHandler reports service liveness and cache availability.
type HealthHandler struct {
	cacheAvailable bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cacheAvailable bool) *HealthHandler {
	return &HealthHandler{cacheAvailable: cacheAvailable}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	redisStatus := "connected"
	if !h.cacheAvailable {
		redisStatus = "degraded"
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "online",
		"redis":  redisStatus,
	})
}
