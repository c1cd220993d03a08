package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sumatra-gis/hazard-sentinel/internal/geo"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// categoryMapping links an EONET category to a hazard type plus a
// display-only attribution and description prefix. The attribution names
// the instrument family typically behind that category; it is cosmetic and
// carries no weight in merge trust, which ranks on Source alone.
type categoryMapping struct {
	hazardType  models.HazardType
	attribution string
	descPrefix  string
}

var eonetCategories = map[string]categoryMapping{
	"wildfires":    {models.HazardTypeFire, "MODIS", "MODIS Thermal Anomaly"},
	"floods":       {models.HazardTypeFlood, "SENTINEL", "Copernicus Sentinel-1 Radar Analysis"},
	"landslides":   {models.HazardTypeLandslide, "LANDSAT", "NASA Landsat Terrain Analysis"},
	"volcanoes":    {models.HazardTypeVolcano, "LAPAN", "Volcanic Activity Report"},
	"severeStorms": {models.HazardTypeWave, "GFS", "Severe Storm / High Wave Advisory"},
}

// EONETSource reads NASA's multi-hazard open-event feed, queried with the
// monitored region's bounding box. Events outside the category table are
// dropped.
type EONETSource struct {
	url        string
	bounds     geo.Bounds
	httpClient *http.Client
}

func NewEONETSource(feedURL string, bounds geo.Bounds, timeout time.Duration) *EONETSource {
	return &EONETSource{
		url:    feedURL,
		bounds: bounds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *EONETSource) Name() string { return string(models.SourceEONET) }

type eonetResponse struct {
	Events []eonetEvent `json:"events"`
}

type eonetEvent struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Categories []struct {
		ID string `json:"id"`
	} `json:"categories"`
	Geometry []struct {
		Date        string    `json:"date"`
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"` // [lng, lat]
	} `json:"geometry"`
}

func (s *EONETSource) Fetch(ctx context.Context) ([]models.HazardPoint, error) {
	bbox := fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(s.bounds.MinLng), formatCoord(s.bounds.MinLat),
		formatCoord(s.bounds.MaxLng), formatCoord(s.bounds.MaxLat))

	params := url.Values{
		"bbox":   {bbox},
		"status": {"open"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"?"+params.Encode(), nil)
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

	var data eonetResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	points := make([]models.HazardPoint, 0, len(data.Events))
	for _, ev := range data.Events {
		if len(ev.Categories) == 0 || len(ev.Geometry) == 0 {
			continue
		}
		mapping, ok := eonetCategories[ev.Categories[0].ID]
		if !ok {
			continue
		}

		// The last geometry entry is the most recent position.
		geom := ev.Geometry[len(ev.Geometry)-1]
		if geom.Type != "Point" || len(geom.Coordinates) < 2 {
			continue
		}
		lng, lat := geom.Coordinates[0], geom.Coordinates[1]
		if !s.bounds.Contains(lat, lng) {
			continue
		}

		var ts int64
		var lastOccurrence string
		if t, err := time.Parse(time.RFC3339, geom.Date); err == nil {
			ts = t.UnixMilli()
			lastOccurrence = t.Format("2006-01-02")
		}

		points = append(points, models.HazardPoint{
			ID:             "eonet-" + ev.ID,
			LocationName:   ev.Title,
			Type:           mapping.hazardType,
			Coords:         models.Coordinates{Lat: lat, Lng: lng},
			Severity:       models.SeverityHigh,
			Description:    mapping.descPrefix + ": " + ev.Title,
			LastOccurrence: lastOccurrence,
			Timestamp:      ts,
			Source:         models.SourceEONET,
			Attribution:    mapping.attribution,
			ExternalLink:   ev.Link,
		})
	}

	return points, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
