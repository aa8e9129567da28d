package entities

// TriageResult is the structured assessment derived from free-text symptoms.
// It is always fully populated: when the AI backend fails or returns
// unparseable output the whole record is replaced by a mock, never merged.
type TriageResult struct {
	Urgency            string   `json:"urgency"`
	Summary            string   `json:"summary"`
	PossibleConditions []string `json:"possible_conditions"`
	Advice             []string `json:"advice"`
	Specialist         string   `json:"specialist"`
	Emergency          bool     `json:"emergency"`
}

// Hospital is a care provider candidate produced by the geosearch gateway
// and completed (DistanceKm) by the ranking service.
type Hospital struct {
	Name                string  `json:"name"`
	Latitude            float64 `json:"lat"`
	Longitude           float64 `json:"lon"`
	Address             string  `json:"address"`
	Rating              float64 `json:"rating"`
	MapsURL             string  `json:"maps_url"`
	DistanceKm          float64 `json:"distance_km"`
	AvailableSpecialist string  `json:"available_specialist"`
}

// FinalResponse is the service-boundary response for a triage request.
// Hospitals are sorted ascending by DistanceKm and capped at 8. LatencyMs
// always reflects the current call, even on a cache hit.
type FinalResponse struct {
	Triage    TriageResult `json:"triage"`
	Hospitals []*Hospital  `json:"hospitals"`
	LatencyMs float64      `json:"latency_ms"`
}
