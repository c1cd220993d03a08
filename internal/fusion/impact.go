package fusion

import (
	"math"

	"github.com/sumatra-gis/hazard-sentinel/internal/geo"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// Exposure bucket distance cutoffs in km.
const (
	highExposureKm   = 20
	mediumExposureKm = 50
)

// AssessImpact finds the nearest major city to a coordinate and buckets the
// expected population exposure by distance. Exact distance ties resolve to
// the earlier entry in geo.MajorCities.
func AssessImpact(lat, lng float64) models.ImpactDetails {
	nearest := ""
	minDist := math.Inf(1)

	for _, city := range geo.MajorCities {
		dist := geo.DistanceKm(lat, lng, city.Lat, city.Lng)
		if dist < minDist {
			minDist = dist
			nearest = city.Name
		}
	}

	bucket := "Low"
	switch {
	case minDist < highExposureKm:
		bucket = "High"
	case minDist < mediumExposureKm:
		bucket = "Medium"
	}

	return models.ImpactDetails{
		NearestCity:    nearest,
		DistanceKm:     int(math.Round(minDist)),
		ExposureBucket: bucket,
	}
}
