package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
	"github.com/zatekoja/smart-health-assistant/pkg/geo"
)

const (
	// Matches the provider page trim so the fan-out stays bounded.
	maxConcurrentLookups = 10

	maxRankedResults = 8
)

// RankingService completes care provider candidates with a distance metric
// and orders them. Routed distances are used when a distance provider is
// configured, haversine otherwise; each routed lookup falls back to
// haversine on its own failure so a flaky provider degrades per candidate,
// not per request.
type RankingService struct {
	distance providers.DistanceProvider // nil means haversine only
}

// NewRankingService creates a new ranking service. distance may be nil.
func NewRankingService(distance providers.DistanceProvider) *RankingService {
	return &RankingService{distance: distance}
}

// Rank fills DistanceKm for every candidate, sorts ascending by distance
// and truncates to the top 8. All distance lookups for one pass run
// concurrently and join before sorting, so latency is bounded by the
// slowest single lookup. Ties keep the original provider order
// (sort.SliceStable).
func (s *RankingService) Rank(ctx context.Context, origin providers.Coordinates, hospitals []*entities.Hospital) []*entities.Hospital {
	if len(hospitals) == 0 {
		return []*entities.Hospital{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for _, h := range hospitals {
		g.Go(func() error {
			h.DistanceKm = s.distanceKm(gctx, origin, h)
			return nil
		})
	}

	// Workers never return errors; Wait only joins the fan-out.
	_ = g.Wait()

	ranked := make([]*entities.Hospital, len(hospitals))
	copy(ranked, hospitals)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > maxRankedResults {
		ranked = ranked[:maxRankedResults]
	}

	return ranked
}

func (s *RankingService) distanceKm(ctx context.Context, origin providers.Coordinates, h *entities.Hospital) float64 {
	if s.distance != nil {
		km, err := s.distance.DrivingDistanceKm(ctx, origin, providers.Coordinates{
			Latitude:  h.Latitude,
			Longitude: h.Longitude,
		})
		if err == nil {
			return km
		}
	}
	return geo.Distance(origin.Latitude, origin.Longitude, h.Latitude, h.Longitude)
}
