package providers

import (
	"context"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
)

// Coordinates represents a geographic point
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether either coordinate is zero, which the service treats
// as "no client geolocation".
func (c Coordinates) IsZero() bool {
	return c.Latitude == 0 || c.Longitude == 0
}

// ResolveCoordinates substitutes the configured fallback region when the
// client supplied no geolocation.
func ResolveCoordinates(c, fallback Coordinates) Coordinates {
	if c.IsZero() {
		return fallback
	}
	return c
}

// SearchQuery carries the inputs for a nearby care provider search.
type SearchQuery struct {
	Origin     Coordinates
	Specialist string
	Urgency    string
}

// GeosearchProvider finds care providers near a coordinate. Implementations
// return raw candidates without distances; the ranking service completes
// them.
type GeosearchProvider interface {
	Search(ctx context.Context, query SearchQuery) ([]*entities.Hospital, error)
}

// DistanceProvider computes a routed (road) distance between two points.
type DistanceProvider interface {
	// DrivingDistanceKm returns the driving distance in kilometres.
	DrivingDistanceKm(ctx context.Context, origin, dest Coordinates) (float64, error)
}
