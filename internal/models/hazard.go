package models

import "time"

type HazardType string

const (
	HazardTypeFire       HazardType = "FIRE"
	HazardTypeFlood      HazardType = "FLOOD"
	HazardTypeLandslide  HazardType = "LANDSLIDE"
	HazardTypeWave       HazardType = "WAVE"
	HazardTypeVolcano    HazardType = "VOLCANO"
	HazardTypeEarthquake HazardType = "EARTHQUAKE"
)

// Severity is ordered: Low < Medium < High < Critical.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Source identifies the feed a point came from. It is the provenance tag
// the merge step ranks by; display labels live in HazardPoint.Attribution.
type Source string

const (
	SourceBMKG     Source = "bmkg"     // local seismic agency feed
	SourceUSGS     Source = "usgs"     // global seismic catalog
	SourceEONET    Source = "eonet"    // NASA multi-hazard event feed
	SourceWeather  Source = "weather"  // synthesized from precipitation forecasts
	SourceBackfill Source = "backfill" // hardcoded reference incidents
	SourceFiller   Source = "filler"   // deterministic presentation points
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Details carries the type-specific payload of a hazard point.
type Details struct {
	Magnitude         float64       `json:"magnitude,omitempty"` // Richter scale
	DepthKm           float64       `json:"depth,omitempty"`
	RainfallMm        float64       `json:"rainfall,omitempty"`
	WaterSources      []Coordinates `json:"waterSources,omitempty"` // for fires
	PopulationDensity string        `json:"populationDensity,omitempty"`
	Elevation         float64       `json:"elevation,omitempty"`
}

// ImpactDetails is the nearest-population-center assessment.
type ImpactDetails struct {
	NearestCity    string `json:"nearestCity"`
	DistanceKm     int    `json:"distanceKm"`
	ExposureBucket string `json:"estimatedPopulationAffected"` // High / Medium / Low
}

// HazardPoint is the fused entity served to clients. Points are rebuilt
// from scratch on every aggregation cycle; IDs are source-prefixed so
// records from different feeds never collide.
type HazardPoint struct {
	ID             string         `json:"id"`
	LocationName   string         `json:"locationName"`
	Type           HazardType     `json:"type"`
	Coords         Coordinates    `json:"coords"`
	Severity       Severity       `json:"severity"`
	Description    string         `json:"description"`
	LastOccurrence string         `json:"lastOccurrence,omitempty"`
	Timestamp      int64          `json:"timestamp,omitempty"` // epoch millis
	Source         Source         `json:"source"`
	Attribution    string         `json:"attribution,omitempty"` // display-only instrument label
	ExternalLink   string         `json:"externalLink,omitempty"`
	RiskScore      int            `json:"riskScore"`
	Forecast       string         `json:"forecast,omitempty"`
	Impact         *ImpactDetails `json:"impactDetails,omitempty"`
	Details        *Details       `json:"details,omitempty"`
}

func (p *HazardPoint) OccurredAt() time.Time {
	return time.UnixMilli(p.Timestamp)
}
