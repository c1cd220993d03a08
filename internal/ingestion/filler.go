package ingestion

import "github.com/sumatra-gis/hazard-sentinel/internal/models"

// fillerPoints is the deterministic presentation set appended after live
// data so the map never renders empty. It simulates satellite-identified
// risk areas (deforestation-linked fire, flood, landslide and wave spots).
// Gated behind config.Sources.FillerEnabled.
var fillerPoints = []models.HazardPoint{
	{
		ID:           "filler-f1",
		LocationName: "Kec. Dumai Barat, Riau",
		Type:         models.HazardTypeFire,
		Coords:       models.Coordinates{Lat: 1.6666, Lng: 101.4500},
		Severity:     models.SeverityCritical,
		Description:  "Hotspot detected in peatland area.",
		Source:       models.SourceFiller,
		Details: &models.Details{
			WaterSources: []models.Coordinates{
				{Lat: 1.6700, Lng: 101.4600},
				{Lat: 1.6600, Lng: 101.4400},
			},
		},
	},
	{
		ID:           "filler-f2",
		LocationName: "Kec. Betara, Jambi",
		Type:         models.HazardTypeFire,
		Coords:       models.Coordinates{Lat: -1.0500, Lng: 103.3500},
		Severity:     models.SeverityHigh,
		Description:  "Active thermal anomaly near plantation.",
		Source:       models.SourceFiller,
		Details: &models.Details{
			WaterSources: []models.Coordinates{
				{Lat: -1.0400, Lng: 103.3600},
			},
		},
	},
	{
		ID:           "filler-fl1",
		LocationName: "Kec. Gandus, Palembang",
		Type:         models.HazardTypeFlood,
		Coords:       models.Coordinates{Lat: -3.0160, Lng: 104.7200},
		Severity:     models.SeverityHigh,
		Description:  "River level rising above threshold.",
		Source:       models.SourceFiller,
	},
	{
		ID:           "filler-fl2",
		LocationName: "Kec. Lhoksukon, Aceh Utara",
		Type:         models.HazardTypeFlood,
		Coords:       models.Coordinates{Lat: 5.0500, Lng: 97.3100},
		Severity:     models.SeverityMedium,
		Description:  "Heavy rainfall accumulation predicted.",
		Source:       models.SourceFiller,
	},
	{
		ID:           "filler-l1",
		LocationName: "Kec. Lembah Anai, Sumatera Barat",
		Type:         models.HazardTypeLandslide,
		Coords:       models.Coordinates{Lat: -0.4700, Lng: 100.3700},
		Severity:     models.SeverityCritical,
		Description:  "Soil saturation critical along main road.",
		Source:       models.SourceFiller,
	},
	{
		ID:           "filler-l2",
		LocationName: "Kec. Liwa, Lampung Barat",
		Type:         models.HazardTypeLandslide,
		Coords:       models.Coordinates{Lat: -5.0300, Lng: 104.0500},
		Severity:     models.SeverityMedium,
		Description:  "Unstable slope detected via satellite imagery.",
		Source:       models.SourceFiller,
	},
	{
		ID:           "filler-w1",
		LocationName: "Kec. Pesisir Selatan, Sumatera Barat",
		Type:         models.HazardTypeWave,
		Coords:       models.Coordinates{Lat: -1.5000, Lng: 100.5000},
		Severity:     models.SeverityHigh,
		Description:  "Significant wave height > 4m predicted.",
		Source:       models.SourceFiller,
	},
	{
		ID:           "filler-w2",
		LocationName: "Kec. Krui, Lampung",
		Type:         models.HazardTypeWave,
		Coords:       models.Coordinates{Lat: -5.1800, Lng: 103.9300},
		Severity:     models.SeverityHigh,
		Description:  "Coastal erosion warning active.",
		Source:       models.SourceFiller,
	},
}

// Filler returns a fresh copy of the presentation points so enrichment
// never mutates the package-level set across cycles.
func Filler() []models.HazardPoint {
	out := make([]models.HazardPoint, len(fillerPoints))
	copy(out, fillerPoints)
	for i := range out {
		if d := out[i].Details; d != nil {
			dd := *d
			dd.WaterSources = append([]models.Coordinates(nil), d.WaterSources...)
			out[i].Details = &dd
		}
	}
	return out
}
