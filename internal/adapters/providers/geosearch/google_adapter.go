package geosearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
	"github.com/zatekoja/smart-health-assistant/pkg/geo"
)

const (
	googleNearbySearchURL   = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	googleDistanceMatrixURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
	defaultHTTPTimeout      = 20 * time.Second

	// Places pages can be long; only the nearest few matter.
	maxGoogleResults = 10
)

// GoogleAdapter implements the primary geosearch provider using the Google
// Places nearby-search API, and routed distances using the Distance Matrix
// API.
type GoogleAdapter struct {
	apiKey     string
	httpClient *http.Client
	nearbyURL  string
	matrixURL  string
}

// NewGoogleAdapter creates a new Google geosearch adapter.
func NewGoogleAdapter(apiKey string) *GoogleAdapter {
	return NewGoogleAdapterWithOptions(apiKey, googleNearbySearchURL, googleDistanceMatrixURL, nil)
}

// NewGoogleAdapterWithOptions allows overriding endpoints and HTTP client (used for tests).
func NewGoogleAdapterWithOptions(apiKey, nearbyURL, matrixURL string, httpClient *http.Client) *GoogleAdapter {
	if strings.TrimSpace(nearbyURL) == "" {
		nearbyURL = googleNearbySearchURL
	}
	if strings.TrimSpace(matrixURL) == "" {
		matrixURL = googleDistanceMatrixURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleAdapter{
		apiKey:     apiKey,
		httpClient: httpClient,
		nearbyURL:  nearbyURL,
		matrixURL:  matrixURL,
	}
}

// Search queries the Places nearby-search endpoint ranked by distance. The
// keyword and place type depend on urgency: high urgency searches emergency
// hospitals, anything else searches clinics.
func (g *GoogleAdapter) Search(ctx context.Context, query providers.SearchQuery) ([]*entities.Hospital, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}

	keyword := fmt.Sprintf("%s Medical Clinic", query.Specialist)
	placeType := "doctor"
	if strings.EqualFold(query.Urgency, "high") {
		keyword = fmt.Sprintf("Emergency %s Hospital", query.Specialist)
		placeType = "hospital"
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", query.Origin.Latitude, query.Origin.Longitude))
	params.Set("keyword", keyword)
	params.Set("type", placeType)
	params.Set("rankby", "distance")
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.nearbyURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nearby search request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nearby search returned status %d", resp.StatusCode)
	}

	var payload googleNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode nearby search response: %w", err)
	}

	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("nearby search failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("nearby search failed: %s", payload.Status)
	}

	places := payload.Results
	if len(places) > maxGoogleResults {
		places = places[:maxGoogleResults]
	}

	hospitals := make([]*entities.Hospital, 0, len(places))
	for _, p := range places {
		address := p.Vicinity
		if address == "" {
			address = "Nearby"
		}
		hospitals = append(hospitals, &entities.Hospital{
			Name:                p.Name,
			Latitude:            p.Geometry.Location.Lat,
			Longitude:           p.Geometry.Location.Lng,
			Address:             address,
			Rating:              p.Rating,
			MapsURL:             googleDirectionsURL(query.Origin, p.Geometry.Location.Lat, p.Geometry.Location.Lng),
			AvailableSpecialist: query.Specialist,
		})
	}

	return hospitals, nil
}

// DrivingDistanceKm returns the road distance between two points via the
// Distance Matrix API, rounded to two decimals.
func (g *GoogleAdapter) DrivingDistanceKm(ctx context.Context, origin, dest providers.Coordinates) (float64, error) {
	if g.apiKey == "" {
		return 0, fmt.Errorf("google maps api key is required")
	}

	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	params.Set("destinations", fmt.Sprintf("%f,%f", dest.Latitude, dest.Longitude))
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.matrixURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build distance matrix request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("distance matrix returned status %d", resp.StatusCode)
	}

	var payload googleMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode distance matrix response: %w", err)
	}

	if payload.Status != "OK" || len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance matrix failed: %s", payload.Status)
	}

	element := payload.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("distance matrix element failed: %s", element.Status)
	}

	return geo.RoundKm(float64(element.Distance.Value) / 1000), nil
}

func googleDirectionsURL(origin providers.Coordinates, destLat, destLon float64) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&origin=%f,%f&destination=%f,%f&travelmode=driving",
		origin.Latitude, origin.Longitude, destLat, destLon,
	)
}

type googleNearbyResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []googlePlace `json:"results"`
}

type googlePlace struct {
	Name     string         `json:"name"`
	Vicinity string         `json:"vicinity"`
	Rating   float64        `json:"rating"`
	Geometry googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleMatrixResponse struct {
	Status string            `json:"status"`
	Rows   []googleMatrixRow `json:"rows"`
}

type googleMatrixRow struct {
	Elements []googleMatrixElement `json:"elements"`
}

type googleMatrixElement struct {
	Status   string `json:"status"`
	Distance struct {
		Value int `json:"value"`
	} `json:"distance"`
}
