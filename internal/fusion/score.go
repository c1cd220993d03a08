// Package fusion holds the pure data-fusion steps: risk scoring, nearest
// population-center impact assessment, and the proximity merge that
// collapses duplicate reports of the same physical event.
package fusion

import "github.com/sumatra-gis/hazard-sentinel/internal/models"

const (
	baseScore = 50
	maxScore  = 100

	// Earthquake modifiers.
	majorQuakeMagnitude    = 7.0
	strongQuakeMagnitude   = 6.0
	shallowQuakeDepthKm    = 15
	majorQuakeAddend       = 20
	strongQuakeAddend      = 10
	shallowQuakeAddend     = 15
	thermalSatelliteAddend = 10

	// Rainfall modifiers for floods and landslides.
	heavyRainMm     = 50
	moderateRainMm  = 20
	heavyRainAddend = 20
	rainAddend      = 10
)

var severityAddend = map[models.Severity]int{
	models.SeverityCritical: 30,
	models.SeverityHigh:     15,
	models.SeverityMedium:   5,
	models.SeverityLow:      0,
}

// Score computes the 0-100 risk score for a point. Pure summation over
// non-negative addends, clamped at 100; addend order is irrelevant.
func Score(p models.HazardPoint) int {
	score := baseScore

	score += severityAddend[p.Severity]

	if p.Type == models.HazardTypeEarthquake && p.Details != nil {
		if p.Details.Magnitude >= majorQuakeMagnitude {
			score += majorQuakeAddend
		} else if p.Details.Magnitude >= strongQuakeMagnitude {
			score += strongQuakeAddend
		}
		// Shallow quakes do disproportionate surface damage.
		if p.Details.DepthKm > 0 && p.Details.DepthKm < shallowQuakeDepthKm {
			score += shallowQuakeAddend
		}
	}

	// Thermal-satellite attribution indicates a verified heat signature.
	if p.Type == models.HazardTypeFire && p.Attribution == "MODIS" {
		score += thermalSatelliteAddend
	}

	if (p.Type == models.HazardTypeFlood || p.Type == models.HazardTypeLandslide) && p.Details != nil {
		if p.Details.RainfallMm > heavyRainMm {
			score += heavyRainAddend
		} else if p.Details.RainfallMm > moderateRainMm {
			score += rainAddend
		}
	}

	if score > maxScore {
		return maxScore
	}
	return score
}
