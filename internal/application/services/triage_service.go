package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/observability"
)

// Cached responses expire after an hour.
const triageCacheTTLSeconds = 3600

// TriageService orchestrates a triage request: cache lookup, AI assessment
// (with mock fallback), provider search, ranking, and cache write-back. It
// is the only component with side effects sequenced in a fixed order.
type TriageService struct {
	cache   providers.CacheProvider
	triage  providers.TriageProvider // nil means mock responses only
	gateway providers.GeosearchProvider
	ranker  *RankingService
	origin  providers.Coordinates // substituted when the client sends (0,0)
	metrics *observability.Metrics
}

// NewTriageService creates a new triage pipeline. triage may be nil when no
// AI backend is configured.
func NewTriageService(
	cache providers.CacheProvider,
	triage providers.TriageProvider,
	gateway providers.GeosearchProvider,
	ranker *RankingService,
	defaultOrigin providers.Coordinates,
	metrics *observability.Metrics,
) *TriageService {
	return &TriageService{
		cache:   cache,
		triage:  triage,
		gateway: gateway,
		ranker:  ranker,
		origin:  defaultOrigin,
		metrics: metrics,
	}
}

// CacheKey derives the cache key for a triage request. It is a pure
// function of the symptom text (lowercased, trimmed) and the latitude
// rounded to two decimals. Longitude and urgency are deliberately not part
// of the key; see DESIGN.md for why this upstream behavior is preserved.
func CacheKey(symptoms string, latitude float64) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(symptoms))))
	return fmt.Sprintf("triage_%s_%g", hex.EncodeToString(sum[:]), math.Round(latitude*100)/100)
}

// MockTriage returns the fixed record substituted whenever the AI backend
// is unavailable or its output cannot be repaired. The record replaces the
// AI output wholesale, never merges with it.
func MockTriage() *entities.TriageResult {
	return &entities.TriageResult{
		Urgency:            "Moderate",
		Summary:            "Mock summary: Please consult a doctor for proper diagnosis.",
		PossibleConditions: []string{"Common cold", "Allergies"},
		Advice:             []string{"Rest", "Drink fluids", "See a doctor if symptoms persist"},
		Specialist:         "General Physician",
		Emergency:          false,
	}
}

// Process handles one triage request end to end.
func (s *TriageService) Process(ctx context.Context, symptoms string, latitude, longitude float64, mentalHealth bool) (*entities.FinalResponse, error) {
	start := time.Now()
	logger := observability.LoggerFromContext(ctx)

	// 1. Cache check. Lookup failures are logged and treated as a miss.
	key := CacheKey(symptoms, latitude)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		logger.Error().Err(err).Msg("cache lookup failed")
	} else if len(cached) > 0 {
		var response entities.FinalResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			response.LatencyMs = elapsedMs(start)
			observability.RecordCacheHit(ctx, s.metrics)
			return &response, nil
		}
		logger.Warn().Str("key", key).Msg("failed to unmarshal cached triage response")
	}
	observability.RecordCacheMiss(ctx, s.metrics)

	// 2. AI assessment. Any failure substitutes the mock record; AI
	// trouble is never fatal to the request.
	triage := s.assess(ctx, symptoms, mentalHealth)

	// 3. Care provider search and ranking.
	origin := providers.ResolveCoordinates(
		providers.Coordinates{Latitude: latitude, Longitude: longitude},
		s.origin,
	)
	hospitals, err := s.gateway.Search(ctx, providers.SearchQuery{
		Origin:     origin,
		Specialist: triage.Specialist,
		Urgency:    triage.Urgency,
	})
	if err != nil {
		logger.Error().Err(err).Msg("geosearch failed")
		hospitals = []*entities.Hospital{}
	}
	ranked := s.ranker.Rank(ctx, origin, hospitals)

	// 4. Assemble and write back, best effort.
	response := &entities.FinalResponse{
		Triage:    *triage,
		Hospitals: ranked,
		LatencyMs: elapsedMs(start),
	}

	if payload, err := json.Marshal(response); err == nil {
		if err := s.cache.Set(ctx, key, payload, triageCacheTTLSeconds); err != nil {
			logger.Warn().Err(err).Msg("failed to cache triage response")
		}
	}

	return response, nil
}

func (s *TriageService) assess(ctx context.Context, symptoms string, mentalHealth bool) *entities.TriageResult {
	logger := observability.LoggerFromContext(ctx)

	if s.triage == nil {
		logger.Warn().Msg("no AI backend configured, using mock data")
		observability.RecordTriageMock(ctx, s.metrics)
		return MockTriage()
	}

	triage, err := s.triage.Assess(ctx, symptoms, mentalHealth)
	if err != nil {
		logger.Warn().Err(err).Msg("AI assessment failed, using mock data")
		observability.RecordTriageMock(ctx, s.metrics)
		return MockTriage()
	}

	return triage
}

func elapsedMs(start time.Time) float64 {
	return math.Round(float64(time.Since(start).Nanoseconds())/1e6*100) / 100
}
