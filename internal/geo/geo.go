// Package geo computes great-circle distances on a spherical Earth.
package geo

import "math"

// EarthRadius is the sphere radius used for distance calculations, in meters.
const EarthRadius = 6_371_000.0

// Coord is a latitude/longitude pair in degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the haversine distance in meters between two points given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1, p2 := toRad(lat1), toRad(lat2)
	dp, dl := toRad(lat2-lat1), toRad(lon2-lon1)

	a := math.Sin(dp/2)*math.Sin(dp/2) +
		math.Cos(p1)*math.Cos(p2)*math.Sin(dl/2)*math.Sin(dl/2)
	// Rounding can push a just past 1 near antipodes.
	a = math.Min(1, math.Max(0, a))
	return EarthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Valid reports whether c is a finite position with |Lat| <= 90 and
// |Lon| <= 180.
func (c Coord) Valid() bool {
	return math.Abs(c.Lat) <= 90 && math.Abs(c.Lon) <= 180
}

// DistanceTo returns the distance in meters from c to other.
func (c Coord) DistanceTo(other Coord) float64 {
	return Distance(c.Lat, c.Lon, other.Lat, other.Lon)
}

// Offset returns c shifted by the given degrees.
func (c Coord) Offset(dLat, dLon float64) Coord {
	return Coord{Lat: c.Lat + dLat, Lon: c.Lon + dLon}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
