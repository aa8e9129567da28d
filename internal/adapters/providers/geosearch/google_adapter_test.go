package geosearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
)

func nearbyPayload(places ...googlePlace) googleNearbyResponse {
	return googleNearbyResponse{Status: "OK", Results: places}
}

func place(name string, lat, lng, rating float64) googlePlace {
	p := googlePlace{Name: name, Vicinity: name + " Street", Rating: rating}
	p.Geometry.Location.Lat = lat
	p.Geometry.Location.Lng = lng
	return p
}

func TestGoogleSearch_HighUrgencyQuery(t *testing.T) {
	var gotKeyword, gotType, gotRankBy string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKeyword = r.URL.Query().Get("keyword")
		gotType = r.URL.Query().Get("type")
		gotRankBy = r.URL.Query().Get("rankby")
		json.NewEncoder(w).Encode(nearbyPayload(place("City Hospital", 12.85, 80.16, 4.2)))
	}))
	defer server.Close()

	adapter := NewGoogleAdapterWithOptions("key", server.URL, "", server.Client())
	hospitals, err := adapter.Search(context.Background(), providers.SearchQuery{
		Origin:     providers.Coordinates{Latitude: 12.84, Longitude: 80.15},
		Specialist: "Cardiologist",
		Urgency:    "High",
	})
	require.NoError(t, err)

	assert.Equal(t, "Emergency Cardiologist Hospital", gotKeyword)
	assert.Equal(t, "hospital", gotType)
	assert.Equal(t, "distance", gotRankBy)
	require.Len(t, hospitals, 1)
	assert.Equal(t, "City Hospital", hospitals[0].Name)
	assert.Equal(t, "City Hospital Street", hospitals[0].Address)
	assert.Equal(t, 4.2, hospitals[0].Rating)
	assert.Equal(t, "Cardiologist", hospitals[0].AvailableSpecialist)
	assert.Contains(t, hospitals[0].MapsURL, "https://www.google.com/maps/dir/")
	assert.Contains(t, hospitals[0].MapsURL, "travelmode=driving")
}

func TestGoogleSearch_LowUrgencyQuery(t *testing.T) {
	var gotKeyword, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKeyword = r.URL.Query().Get("keyword")
		gotType = r.URL.Query().Get("type")
		json.NewEncoder(w).Encode(nearbyPayload())
	}))
	defer server.Close()

	adapter := NewGoogleAdapterWithOptions("key", server.URL, "", server.Client())
	hospitals, err := adapter.Search(context.Background(), providers.SearchQuery{
		Origin:     providers.Coordinates{Latitude: 12.84, Longitude: 80.15},
		Specialist: "Dermatologist",
		Urgency:    "Low",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dermatologist Medical Clinic", gotKeyword)
	assert.Equal(t, "doctor", gotType)
	assert.Empty(t, hospitals)
}

func TestGoogleSearch_TruncatesToTen(t *testing.T) {
	var places []googlePlace
	for i := 0; i < 15; i++ {
		places = append(places, place("Clinic", 12.8, 80.1, 3))
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(nearbyPayload(places...))
	}))
	defer server.Close()

	adapter := NewGoogleAdapterWithOptions("key", server.URL, "", server.Client())
	hospitals, err := adapter.Search(context.Background(), providers.SearchQuery{
		Origin: providers.Coordinates{Latitude: 12.84, Longitude: 80.15},
	})
	require.NoError(t, err)
	assert.Len(t, hospitals, 10)
}

func TestGoogleSearch_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		adapter := NewGoogleAdapter("")
		_, err := adapter.Search(context.Background(), providers.SearchQuery{})
		assert.Error(t, err)
	})

	t.Run("request denied status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(googleNearbyResponse{Status: "REQUEST_DENIED", ErrorMessage: "bad key"})
		}))
		defer server.Close()

		adapter := NewGoogleAdapterWithOptions("key", server.URL, "", server.Client())
		_, err := adapter.Search(context.Background(), providers.SearchQuery{})
		assert.ErrorContains(t, err, "REQUEST_DENIED")
	})

	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		adapter := NewGoogleAdapterWithOptions("key", server.URL, "", server.Client())
		_, err := adapter.Search(context.Background(), providers.SearchQuery{})
		assert.Error(t, err)
	})
}

func TestDrivingDistanceKm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("origins"))
		assert.NotEmpty(t, r.URL.Query().Get("destinations"))
		var payload googleMatrixResponse
		payload.Status = "OK"
		payload.Rows = []googleMatrixRow{{Elements: []googleMatrixElement{{Status: "OK"}}}}
		payload.Rows[0].Elements[0].Distance.Value = 12345
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	adapter := NewGoogleAdapterWithOptions("key", "", server.URL, server.Client())
	km, err := adapter.DrivingDistanceKm(context.Background(),
		providers.Coordinates{Latitude: 12.84, Longitude: 80.15},
		providers.Coordinates{Latitude: 12.9, Longitude: 80.2},
	)
	require.NoError(t, err)
	assert.Equal(t, 12.35, km)
}

func TestDrivingDistanceKm_ElementNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload googleMatrixResponse
		payload.Status = "OK"
		payload.Rows = []googleMatrixRow{{Elements: []googleMatrixElement{{Status: "NOT_FOUND"}}}}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	adapter := NewGoogleAdapterWithOptions("key", "", server.URL, server.Client())
	_, err := adapter.DrivingDistanceKm(context.Background(), providers.Coordinates{}, providers.Coordinates{})
	assert.Error(t, err)
}
