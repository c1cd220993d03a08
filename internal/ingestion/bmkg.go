package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sumatra-gis/hazard-sentinel/internal/geo"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// BMKGSource reads the Indonesian seismic agency's earthquake feeds. Two
// endpoints are consumed: the latest M>5 list and the "felt" report list.
// BMKG is the trusted local source in the merge step.
type BMKGSource struct {
	latestURL  string
	feltURL    string
	httpClient *http.Client
}

func NewBMKGSource(latestURL, feltURL string, timeout time.Duration) *BMKGSource {
	return &BMKGSource{
		latestURL: latestURL,
		feltURL:   feltURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *BMKGSource) Name() string { return string(models.SourceBMKG) }

type bmkgResponse struct {
	Infogempa struct {
		Gempa []bmkgQuake `json:"gempa"`
	} `json:"Infogempa"`
}

type bmkgQuake struct {
	Tanggal     string `json:"Tanggal"`
	Jam         string `json:"Jam"`
	DateTime    string `json:"DateTime"`
	Coordinates string `json:"Coordinates"` // "lat,lng"
	Magnitude   string `json:"Magnitude"`
	Kedalaman   string `json:"Kedalaman"` // e.g. "10 km"
	Wilayah     string `json:"Wilayah"`
}

// Fetch returns the concatenation of both endpoints. A failure of either
// endpoint fails the whole source; the aggregator treats that as an empty
// contribution for the cycle.
func (s *BMKGSource) Fetch(ctx context.Context) ([]models.HazardPoint, error) {
	latest, err := s.fetchEndpoint(ctx, s.latestURL)
	if err != nil {
		return nil, fmt.Errorf("bmkg latest: %w", err)
	}

	felt, err := s.fetchEndpoint(ctx, s.feltURL)
	if err != nil {
		return nil, fmt.Errorf("bmkg felt: %w", err)
	}

	return append(latest, felt...), nil
}

func (s *BMKGSource) fetchEndpoint(ctx context.Context, url string) ([]models.HazardPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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

	var data bmkgResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	points := make([]models.HazardPoint, 0, len(data.Infogempa.Gempa))
	for _, q := range data.Infogempa.Gempa {
		lat, lng, err := parseCoordinatePair(q.Coordinates)
		if err != nil {
			slog.Warn("BMKG coordinate parsing failed", "coordinates", q.Coordinates, "error", err)
			continue
		}
		if !geo.InsideRegion(lat, lng) {
			continue
		}

		mag, _ := strconv.ParseFloat(q.Magnitude, 64)
		depth := parseDepthKm(q.Kedalaman)

		severity := models.SeverityHigh
		if mag > 6.0 {
			severity = models.SeverityCritical
		}

		var ts int64
		if t, err := time.Parse(time.RFC3339, q.DateTime); err == nil {
			ts = t.UnixMilli()
		} else {
			slog.Warn("BMKG timestamp parsing failed", "datetime", q.DateTime, "error", err)
		}

		points = append(points, models.HazardPoint{
			ID:             "bmkg-" + q.DateTime,
			LocationName:   q.Wilayah,
			Type:           models.HazardTypeEarthquake,
			Coords:         models.Coordinates{Lat: lat, Lng: lng},
			Severity:       severity,
			Description:    fmt.Sprintf("Tectonic earthquake M%.1f, depth %s.", mag, q.Kedalaman),
			LastOccurrence: q.Tanggal + " " + q.Jam,
			Timestamp:      ts,
			Source:         models.SourceBMKG,
			ExternalLink:   "https://warning.bmkg.go.id",
			Details: &models.Details{
				Magnitude: mag,
				DepthKm:   depth,
			},
		})
	}

	return points, nil
}

// parseCoordinatePair splits BMKG's "lat,lng" string.
func parseCoordinatePair(s string) (lat, lng float64, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate pair %q", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed latitude in %q: %w", s, err)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed longitude in %q: %w", s, err)
	}
	return lat, lng, nil
}

// parseDepthKm extracts the numeric depth from strings like "10 km".
func parseDepthKm(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "km"))
	d, _ := strconv.ParseFloat(s, 64)
	return d
}
