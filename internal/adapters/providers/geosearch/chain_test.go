package geosearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
)

type fakeProvider struct {
	hospitals []*entities.Hospital
	err       error
	queries   []providers.SearchQuery
}

func (f *fakeProvider) Search(ctx context.Context, query providers.SearchQuery) ([]*entities.Hospital, error) {
	f.queries = append(f.queries, query)
	return f.hospitals, f.err
}

var defaultOrigin = providers.Coordinates{Latitude: 12.8407, Longitude: 80.1534}

func TestChain_PrimarySuccessShortCircuits(t *testing.T) {
	primary := &fakeProvider{hospitals: []*entities.Hospital{{Name: "Primary"}}}
	fallback := &fakeProvider{hospitals: []*entities.Hospital{{Name: "Fallback"}}}
	chain := NewChain(primary, fallback, defaultOrigin, nil)

	hospitals, err := chain.Search(context.Background(), providers.SearchQuery{
		Origin: providers.Coordinates{Latitude: 12.9, Longitude: 80.2},
	})
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Equal(t, "Primary", hospitals[0].Name)
	assert.Empty(t, fallback.queries)
}

func TestChain_PrimaryFailureFallsBack(t *testing.T) {
	primary := &fakeProvider{err: errors.New("quota exceeded")}
	fallback := &fakeProvider{hospitals: []*entities.Hospital{{Name: "Fallback"}}}
	chain := NewChain(primary, fallback, defaultOrigin, nil)

	hospitals, err := chain.Search(context.Background(), providers.SearchQuery{
		Origin: providers.Coordinates{Latitude: 12.9, Longitude: 80.2},
	})
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Equal(t, "Fallback", hospitals[0].Name)
}

func TestChain_NoPrimarySkipsStraightToFallback(t *testing.T) {
	fallback := &fakeProvider{hospitals: []*entities.Hospital{{Name: "Fallback"}}}
	chain := NewChain(nil, fallback, defaultOrigin, nil)

	hospitals, err := chain.Search(context.Background(), providers.SearchQuery{
		Origin: providers.Coordinates{Latitude: 12.9, Longitude: 80.2},
	})
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
}

func TestChain_TotalFailureIsEmptyNotError(t *testing.T) {
	primary := &fakeProvider{err: errors.New("down")}
	fallback := &fakeProvider{err: errors.New("also down")}
	chain := NewChain(primary, fallback, defaultOrigin, nil)

	hospitals, err := chain.Search(context.Background(), providers.SearchQuery{
		Origin: providers.Coordinates{Latitude: 12.9, Longitude: 80.2},
	})
	assert.NoError(t, err)
	assert.Empty(t, hospitals)
}

func TestChain_ZeroOriginSubstitutedBeforeAnyProviderCall(t *testing.T) {
	primary := &fakeProvider{hospitals: []*entities.Hospital{}}
	chain := NewChain(primary, &fakeProvider{}, defaultOrigin, nil)

	_, err := chain.Search(context.Background(), providers.SearchQuery{
		Origin: providers.Coordinates{Latitude: 0, Longitude: 0},
	})
	require.NoError(t, err)
	require.Len(t, primary.queries, 1)
	assert.Equal(t, defaultOrigin, primary.queries[0].Origin)
}

func TestChain_SanitizesSpecialist(t *testing.T) {
	primary := &fakeProvider{hospitals: []*entities.Hospital{}}
	chain := NewChain(primary, &fakeProvider{}, defaultOrigin, nil)

	_, err := chain.Search(context.Background(), providers.SearchQuery{
		Origin:     providers.Coordinates{Latitude: 12.9, Longitude: 80.2},
		Specialist: "['Cardiologist']",
	})
	require.NoError(t, err)
	require.Len(t, primary.queries, 1)
	assert.Equal(t, "Cardiologist", primary.queries[0].Specialist)
}
