package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zatekoja/smart-health-assistant/internal/adapters/providers/ai"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
)

// DebugHandler exposes the raw AI backend for prompt inspection. Disabled
// unless explicitly enabled via configuration.
type DebugHandler struct {
	generator providers.TextGenerator
	enabled   bool
}

// NewDebugHandler creates a new debug handler.
func NewDebugHandler(generator providers.TextGenerator, enabled bool) *DebugHandler {
	return &DebugHandler{generator: generator, enabled: enabled}
}

type debugRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateRaw handles POST /api/debug/ai
func (h *DebugHandler) GenerateRaw(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		respondWithError(w, http.StatusForbidden, "debug endpoint is disabled")
		return
	}
	if h.generator == nil {
		respondWithError(w, http.StatusServiceUnavailable, "AI backend is not configured")
		return
	}

	var req debugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondWithError(w, http.StatusBadRequest, "prompt field is required")
		return
	}

	raw, err := h.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "generation failed: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"raw":    raw,
		"parsed": ai.RepairTriage(raw),
	})
}
