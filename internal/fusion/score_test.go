package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

func TestScore(t *testing.T) {
	t.Run("base score for low severity", func(t *testing.T) {
		p := models.HazardPoint{Type: models.HazardTypeWave, Severity: models.SeverityLow}
		assert.Equal(t, 50, Score(p))
	})

	t.Run("severity addends", func(t *testing.T) {
		for severity, want := range map[models.Severity]int{
			models.SeverityLow:      50,
			models.SeverityMedium:   55,
			models.SeverityHigh:     65,
			models.SeverityCritical: 80,
		} {
			p := models.HazardPoint{Type: models.HazardTypeWave, Severity: severity}
			assert.Equal(t, want, Score(p), "severity %s", severity)
		}
	})

	t.Run("critical shallow major quake clamps at 100", func(t *testing.T) {
		p := models.HazardPoint{
			Type:     models.HazardTypeEarthquake,
			Severity: models.SeverityCritical,
			Details:  &models.Details{Magnitude: 7.5, DepthKm: 5},
		}
		// 50 + 30 + 20 + 15 = 115, clamped.
		assert.Equal(t, 100, Score(p))
	})

	t.Run("strong quake below shallow threshold boundary", func(t *testing.T) {
		p := models.HazardPoint{
			Type:     models.HazardTypeEarthquake,
			Severity: models.SeverityHigh,
			Details:  &models.Details{Magnitude: 6.5, DepthKm: 20},
		}
		assert.Equal(t, 75, Score(p)) // 50 + 15 + 10
	})

	t.Run("unknown depth earns no shallow addend", func(t *testing.T) {
		p := models.HazardPoint{
			Type:     models.HazardTypeEarthquake,
			Severity: models.SeverityHigh,
			Details:  &models.Details{Magnitude: 6.5},
		}
		assert.Equal(t, 75, Score(p))
	})

	t.Run("thermal satellite fire", func(t *testing.T) {
		modis := models.HazardPoint{
			Type:        models.HazardTypeFire,
			Severity:    models.SeverityHigh,
			Attribution: "MODIS",
		}
		assert.Equal(t, 75, Score(modis)) // 50 + 15 + 10

		plain := modis
		plain.Attribution = ""
		assert.Equal(t, 65, Score(plain))
	})

	t.Run("rainfall addends for floods and landslides", func(t *testing.T) {
		flood := models.HazardPoint{
			Type:     models.HazardTypeFlood,
			Severity: models.SeverityMedium,
			Details:  &models.Details{RainfallMm: 30},
		}
		assert.Equal(t, 65, Score(flood)) // 50 + 5 + 10

		flood.Details.RainfallMm = 60
		assert.Equal(t, 75, Score(flood)) // 50 + 5 + 20

		landslide := models.HazardPoint{
			Type:     models.HazardTypeLandslide,
			Severity: models.SeverityHigh,
			Details:  &models.Details{RainfallMm: 55},
		}
		assert.Equal(t, 85, Score(landslide)) // 50 + 15 + 20
	})

	t.Run("rainfall ignored for other types", func(t *testing.T) {
		p := models.HazardPoint{
			Type:     models.HazardTypeEarthquake,
			Severity: models.SeverityLow,
			Details:  &models.Details{RainfallMm: 80},
		}
		assert.Equal(t, 50, Score(p))
	})

	t.Run("never below 50 or above 100", func(t *testing.T) {
		points := []models.HazardPoint{
			{},
			{Type: models.HazardTypeVolcano, Severity: models.SeverityCritical},
			{
				Type:        models.HazardTypeFire,
				Severity:    models.SeverityCritical,
				Attribution: "MODIS",
			},
		}
		for _, p := range points {
			score := Score(p)
			assert.GreaterOrEqual(t, score, 50)
			assert.LessOrEqual(t, score, 100)
		}
	})
}
