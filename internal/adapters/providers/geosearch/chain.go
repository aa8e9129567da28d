package geosearch

import (
	"context"
	"regexp"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/observability"
)

// AI output sometimes leaks list syntax into the specialist name.
var specialistNoise = regexp.MustCompile(`[\[\]']`)

// Chain is the two-tier provider fallback: a primary keyed provider tried
// first, then a keyless fallback. Any failure on the primary path triggers
// the fallback; a failure of both yields an empty result, never an error.
type Chain struct {
	primary  providers.GeosearchProvider // nil when no API key is configured
	fallback providers.GeosearchProvider
	origin   providers.Coordinates // substituted when the client sends (0,0)
	metrics  *observability.Metrics
}

// NewChain creates the provider fallback chain. primary may be nil.
func NewChain(primary, fallback providers.GeosearchProvider, defaultOrigin providers.Coordinates, metrics *observability.Metrics) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		origin:   defaultOrigin,
		metrics:  metrics,
	}
}

// Search normalizes the query (fallback origin, specialist sanitization) and
// walks the provider chain. The returned error is always nil; total failure
// is an empty slice.
func (c *Chain) Search(ctx context.Context, query providers.SearchQuery) ([]*entities.Hospital, error) {
	logger := observability.LoggerFromContext(ctx)

	query.Origin = providers.ResolveCoordinates(query.Origin, c.origin)
	query.Specialist = specialistNoise.ReplaceAllString(query.Specialist, "")

	if c.primary != nil {
		hospitals, err := c.primary.Search(ctx, query)
		if err == nil {
			return hospitals, nil
		}
		logger.Warn().Err(err).Msg("primary geosearch provider failed, falling back")
	}

	observability.RecordProviderFallback(ctx, c.metrics)

	hospitals, err := c.fallback.Search(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("fallback geosearch provider failed")
		return []*entities.Hospital{}, nil
	}

	return hospitals, nil
}
