package geo

// City is a named population center used for impact assessment and the
// weather-derived flood risk scan.
type City struct {
	Name string
	Lat  float64
	Lng  float64
}

// MajorCities lists the monitored population centers. Order matters: impact
// assessment breaks distance ties in favor of the first entry.
var MajorCities = []City{
	{Name: "Banda Aceh", Lat: 5.5483, Lng: 95.3238},
	{Name: "Medan", Lat: 3.5952, Lng: 98.6722},
	{Name: "Padang", Lat: -0.9471, Lng: 100.4172},
	{Name: "Pekanbaru", Lat: 0.5071, Lng: 101.4478},
	{Name: "Jambi", Lat: -1.6099, Lng: 103.6073},
	{Name: "Palembang", Lat: -2.9761, Lng: 104.7754},
	{Name: "Bengkulu", Lat: -3.8004, Lng: 102.2655},
	{Name: "Bandar Lampung", Lat: -5.3971, Lng: 105.2668},
}
