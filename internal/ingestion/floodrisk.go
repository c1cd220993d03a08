package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sumatra-gis/hazard-sentinel/internal/geo"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
	"github.com/sumatra-gis/hazard-sentinel/internal/weather"
)

// Rainfall thresholds in mm/day for synthesizing a flood point.
const (
	floodRainfallMm    = 20
	criticalRainfallMm = 50
)

// FloodRiskSource synthesizes FLOOD points from precipitation forecasts
// over the major population centers. It is not a live hazard feed; its
// points are pre-vetted city coordinates and skip the geo filter.
type FloodRiskSource struct {
	forecaster weather.Forecaster
	cities     []geo.City
}

func NewFloodRiskSource(forecaster weather.Forecaster, cities []geo.City) *FloodRiskSource {
	return &FloodRiskSource{
		forecaster: forecaster,
		cities:     cities,
	}
}

func (s *FloodRiskSource) Name() string { return string(models.SourceWeather) }

// Fetch emits one point per city whose forecast rainfall exceeds the flood
// threshold. Forecast failures surface as zero rainfall, so an unreachable
// weather service simply produces no synthetic floods.
func (s *FloodRiskSource) Fetch(ctx context.Context) ([]models.HazardPoint, error) {
	var points []models.HazardPoint

	for _, city := range s.cities {
		fc := s.forecaster.Forecast(ctx, city.Lat, city.Lng)
		if fc.RainfallMm <= floodRainfallMm {
			continue
		}

		severity := models.SeverityHigh
		if fc.RainfallMm > criticalRainfallMm {
			severity = models.SeverityCritical
		}

		points = append(points, models.HazardPoint{
			ID:           "weather-flood-" + citySlug(city.Name),
			LocationName: city.Name,
			Type:         models.HazardTypeFlood,
			Coords:       models.Coordinates{Lat: city.Lat, Lng: city.Lng},
			Severity:     severity,
			Description:  fmt.Sprintf("Forecast rainfall %.1fmm/day exceeds flood threshold near %s.", fc.RainfallMm, city.Name),
			Timestamp:    time.Now().UnixMilli(),
			Source:       models.SourceWeather,
			Forecast:     fc.Text,
			Details: &models.Details{
				RainfallMm: fc.RainfallMm,
			},
		})
	}

	return points, nil
}

func citySlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
