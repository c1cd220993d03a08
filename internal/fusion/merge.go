package fusion

import (
	"math"

	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// mergeProximityDeg is the coordinate delta under which two same-type
// points are considered the same physical event (roughly 10km).
const mergeProximityDeg = 0.1

// trustRanks orders feed provenance from most to least trusted. Lower is
// better. The local agency outranks the global catalogs for the same event;
// synthesized origins rank below every live feed. Unlisted sources rank
// last. Display attributions (MODIS etc.) play no part here.
var trustRanks = map[models.Source]int{
	models.SourceBMKG:     0,
	models.SourceUSGS:     1,
	models.SourceEONET:    2,
	models.SourceWeather:  3,
	models.SourceBackfill: 4,
	models.SourceFiller:   5,
}

// TrustRank returns the provenance priority of a source, lower meaning more
// trusted.
func TrustRank(s models.Source) int {
	if r, ok := trustRanks[s]; ok {
		return r
	}
	return len(trustRanks)
}

// Merge collapses the accumulated points into a unique set. Candidates are
// folded in input order, which the aggregator keeps fixed per source, so
// results are reproducible regardless of fetch completion order. A
// candidate matching an existing same-type entry within the proximity
// threshold replaces it only when strictly higher trusted; otherwise the
// first-accumulated entry stands and the candidate is dropped.
func Merge(points []models.HazardPoint) []models.HazardPoint {
	unique := make([]models.HazardPoint, 0, len(points))

	for _, candidate := range points {
		idx := -1
		for i, existing := range unique {
			if sameEvent(candidate, existing) {
				idx = i
				break
			}
		}

		if idx == -1 {
			unique = append(unique, candidate)
			continue
		}

		if TrustRank(candidate.Source) < TrustRank(unique[idx].Source) {
			unique[idx] = candidate
		}
	}

	return unique
}

func sameEvent(a, b models.HazardPoint) bool {
	if a.Type != b.Type {
		return false
	}
	return math.Abs(a.Coords.Lat-b.Coords.Lat) < mergeProximityDeg &&
		math.Abs(a.Coords.Lng-b.Coords.Lng) < mergeProximityDeg
}
