package ingestion

import (
	"math"

	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// backfillProximityDeg is the coordinate neighborhood within which a live
// point of the same type suppresses a reference event. Wider than the merge
// threshold so a nearby live report always wins over its reference entry.
const backfillProximityDeg = 0.25

// referenceEvents are known long-lived hazards that must not silently
// disappear from the map when the live feeds omit them.
var referenceEvents = []models.HazardPoint{
	{
		ID:           "backfill-sinabung",
		LocationName: "Mount Sinabung, Karo, North Sumatra",
		Type:         models.HazardTypeVolcano,
		Coords:       models.Coordinates{Lat: 3.1700, Lng: 98.3920},
		Severity:     models.SeverityHigh,
		Description:  "Active stratovolcano under continuous observation; eruptive episodes since 2010.",
		Source:       models.SourceBackfill,
	},
	{
		ID:           "backfill-marapi",
		LocationName: "Mount Marapi, West Sumatra",
		Type:         models.HazardTypeVolcano,
		Coords:       models.Coordinates{Lat: -0.3810, Lng: 100.4730},
		Severity:     models.SeverityHigh,
		Description:  "Recurring phreatic eruptions; exclusion zone around the summit crater.",
		Source:       models.SourceBackfill,
	},
	{
		ID:           "backfill-kerinci",
		LocationName: "Mount Kerinci, Jambi",
		Type:         models.HazardTypeVolcano,
		Coords:       models.Coordinates{Lat: -1.6970, Lng: 101.2640},
		Severity:     models.SeverityMedium,
		Description:  "Highest volcano in Indonesia; intermittent ash emission recorded.",
		Source:       models.SourceBackfill,
	},
	{
		ID:           "backfill-krakatau",
		LocationName: "Anak Krakatau, Sunda Strait",
		Type:         models.HazardTypeVolcano,
		Coords:       models.Coordinates{Lat: -6.1020, Lng: 105.4230},
		Severity:     models.SeverityCritical,
		Description:  "Post-collapse cone rebuilding; flank instability and tsunami hazard.",
		Source:       models.SourceBackfill,
	},
}

// Backfill returns the reference events that have no live counterpart: a
// reference event is withheld when any live point of the same type lies
// within the backfill neighborhood on both axes.
func Backfill(live []models.HazardPoint) []models.HazardPoint {
	var missing []models.HazardPoint

	for _, ref := range referenceEvents {
		covered := false
		for _, p := range live {
			if p.Type != ref.Type {
				continue
			}
			if math.Abs(p.Coords.Lat-ref.Coords.Lat) < backfillProximityDeg &&
				math.Abs(p.Coords.Lng-ref.Coords.Lng) < backfillProximityDeg {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, ref)
		}
	}

	return missing
}
