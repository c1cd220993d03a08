package geo

import "math"

const earthRadiusKm = 6371

// Bounds is an inclusive geographic bounding box.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// SumatraBounds is the monitored region. Feeds that scan wider areas are
// clipped against it before any further processing.
var SumatraBounds = Bounds{
	MinLat: -6.5, MaxLat: 6.0,
	MinLng: 95.0, MaxLng: 109.0,
}

// Contains reports whether the coordinate lies inside the box. Boundary
// values count as inside.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// InsideRegion reports whether the coordinate is inside the monitored region.
func InsideRegion(lat, lng float64) bool {
	return SumatraBounds.Contains(lat, lng)
}

// DistanceKm returns the great-circle distance between two coordinates
// using the haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
