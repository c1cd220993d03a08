package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sumatra-gis/hazard-sentinel/internal/geo"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// USGSSource reads the global significant-earthquake GeoJSON catalog for
// the last 30 days and keeps the events inside the monitored region.
type USGSSource struct {
	url        string
	httpClient *http.Client
}

func NewUSGSSource(feedURL string, timeout time.Duration) *USGSSource {
	return &USGSSource{
		url: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *USGSSource) Name() string { return string(models.SourceUSGS) }

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}

type usgsProperties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // unix millis
	Title string  `json:"title"`
	URL   string  `json:"url"`
}

type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat, depth]
}

func (s *USGSSource) Fetch(ctx context.Context) ([]models.HazardPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	points := make([]models.HazardPoint, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		lng, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		if !geo.InsideRegion(lat, lng) {
			continue
		}

		var depth float64
		if len(f.Geometry.Coordinates) > 2 {
			depth = f.Geometry.Coordinates[2]
		}

		severity := models.SeverityHigh
		if f.Properties.Mag > 6 {
			severity = models.SeverityCritical
		}

		p := models.HazardPoint{
			ID:           "usgs-" + f.ID,
			LocationName: f.Properties.Place,
			Type:         models.HazardTypeEarthquake,
			Coords:       models.Coordinates{Lat: lat, Lng: lng},
			Severity:     severity,
			Description:  fmt.Sprintf("USGS Global Network: M%.1f - %s", f.Properties.Mag, f.Properties.Title),
			Timestamp:    f.Properties.Time,
			Source:       models.SourceUSGS,
			ExternalLink: f.Properties.URL,
			Details: &models.Details{
				Magnitude: f.Properties.Mag,
				DepthKm:   depth,
			},
		}
		p.LastOccurrence = p.OccurredAt().UTC().Format("2006-01-02")
		points = append(points, p)
	}

	return points, nil
}
