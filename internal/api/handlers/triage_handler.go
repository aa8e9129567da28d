package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/smart-health-assistant/internal/api/middleware"
	"github.com/zatekoja/smart-health-assistant/internal/application/services"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/observability"
)

// TriageHandler handles symptom triage HTTP requests.
type TriageHandler struct {
	triage *services.TriageService
}

// NewTriageHandler creates a new triage handler.
func NewTriageHandler(triage *services.TriageService) *TriageHandler {
	return &TriageHandler{triage: triage}
}

// triageRequest accepts coordinates as either JSON numbers or quoted
// strings; mobile clients send both shapes.
type triageRequest struct {
	Symptoms  string          `json:"symptoms"`
	Latitude  json.RawMessage `json:"latitude"`
	Longitude json.RawMessage `json:"longitude"`
}

// NearbyHospitals handles POST /api/hospitals/nearby
func (h *TriageHandler) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, false)
}

// MentalHealth handles POST /api/mental-health/analyze
func (h *TriageHandler) MentalHealth(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, true)
}

func (h *TriageHandler) handle(w http.ResponseWriter, r *http.Request, mentalHealth bool) {
	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Symptoms) == "" {
		respondWithError(w, http.StatusBadRequest, "symptoms field is required")
		return
	}

	lat, err := parseCoordinate(req.Latitude)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "invalid latitude: "+err.Error())
		return
	}
	lon, err := parseCoordinate(req.Longitude)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "invalid longitude: "+err.Error())
		return
	}

	logger := observability.LoggerFromContext(r.Context())
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		logger.Info().
			Str("user", principal).
			Bool("mental_health", mentalHealth).
			Msg("Triage request received")
	}

	result, err := h.triage.Process(r.Context(), req.Symptoms, lat, lon, mentalHealth)
	if err != nil {
		logger.Error().Err(err).Msg("Triage pipeline failed")
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// parseCoordinate converts a raw JSON value into a float. Missing values
// decode as zero so the downstream fallback-region substitution applies.
func parseCoordinate(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	s = strings.Trim(s, `"`)
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
