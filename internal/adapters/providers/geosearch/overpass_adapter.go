package geosearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
	"github.com/zatekoja/smart-health-assistant/pkg/config"
)

// Overpass returns plenty of nodes in dense areas; cap before normalizing.
const maxOverpassResults = 20

// OverpassAdapter implements the keyless fallback geosearch provider using
// the OpenStreetMap Overpass API. It knows nothing about specialists or
// urgency: it returns hospitals and clinics within a fixed radius.
type OverpassAdapter struct {
	url        string
	radiusM    int
	httpClient *http.Client
}

// NewOverpassAdapter creates a new Overpass adapter.
func NewOverpassAdapter(cfg *config.OverpassConfig) *OverpassAdapter {
	return NewOverpassAdapterWithOptions(cfg, nil)
}

// NewOverpassAdapterWithOptions allows overriding the HTTP client (used for tests).
func NewOverpassAdapterWithOptions(cfg *config.OverpassConfig, httpClient *http.Client) *OverpassAdapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &OverpassAdapter{
		url:        cfg.URL,
		radiusM:    cfg.RadiusM,
		httpClient: httpClient,
	}
}

// Search queries hospitals and clinics around the origin. Elements without
// coordinates are skipped; names and addresses fall back to placeholders
// since OSM tags are sparse.
func (o *OverpassAdapter) Search(ctx context.Context, query providers.SearchQuery) ([]*entities.Hospital, error) {
	lat, lon := query.Origin.Latitude, query.Origin.Longitude

	overpassQuery := fmt.Sprintf(`
	[out:json];
	(
	  node["amenity"="hospital"](around:%d,%f,%f);
	  node["amenity"="clinic"](around:%d,%f,%f);
	);
	out center tags;
	`, o.radiusM, lat, lon, o.radiusM, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, strings.NewReader(overpassQuery))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	elements := payload.Elements
	if len(elements) > maxOverpassResults {
		elements = elements[:maxOverpassResults]
	}

	hospitals := make([]*entities.Hospital, 0, len(elements))
	for _, el := range elements {
		elLat, elLon := el.coordinates()
		if elLat == 0 || elLon == 0 {
			continue
		}

		name := el.Tags["name"]
		if name == "" {
			name = "Unknown"
		}
		address := el.Tags["addr:full"]
		if address == "" {
			address = el.Tags["addr:street"]
		}
		if address == "" {
			address = "Nearby"
		}

		hospitals = append(hospitals, &entities.Hospital{
			Name:                name,
			Latitude:            elLat,
			Longitude:           elLon,
			Address:             address,
			Rating:              0,
			MapsURL:             osmDirectionsURL(query.Origin, elLat, elLon),
			AvailableSpecialist: query.Specialist,
		})
	}

	return hospitals, nil
}

func osmDirectionsURL(origin providers.Coordinates, destLat, destLon float64) string {
	return fmt.Sprintf(
		"https://www.openstreetmap.org/directions?engine=fossgis_osrm_car&route=%f%%2C%f%%3B%f%%2C%f",
		origin.Latitude, origin.Longitude, destLat, destLon,
	)
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// coordinates prefers node lat/lon and falls back to the way/relation center.
func (el overpassElement) coordinates() (float64, float64) {
	if el.Lat != 0 || el.Lon != 0 {
		return el.Lat, el.Lon
	}
	if el.Center != nil {
		return el.Center.Lat, el.Center.Lon
	}
	return 0, 0
}
