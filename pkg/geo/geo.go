// Package geo provides the coordinate math used by the FlightRadar24 client:
// great-circle distances between tracked entities and the bounding rectangles
// consumed by the live feed query.
package geo

import (
	"math"
	"strconv"
)

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusKm is the Earth's mean radius in kilometers
	EarthRadiusKm = 6371.0
)

// Position represents a point on Earth's surface in decimal degrees (WGS84).
type Position struct {
	// Latitude in decimal degrees (-90 to +90)
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64
}

// DistanceTo returns the great-circle distance to another position in
// kilometers, using the spherical law of cosines.
func (p Position) DistanceTo(other Position) float64 {
	lat1 := p.Latitude * DegreesToRadians
	lon1 := p.Longitude * DegreesToRadians
	lat2 := other.Latitude * DegreesToRadians
	lon2 := other.Longitude * DegreesToRadians

	// Rounding can push the cosine just past 1 for near-identical points,
	// which would make Acos return NaN.
	cosine := math.Sin(lat1)*math.Sin(lat2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1)
	cosine = math.Min(1, math.Max(-1, cosine))

	return math.Acos(cosine) * EarthRadiusKm
}

// Bounds is a geographic rectangle defined by its top-left and bottom-right
// corners, in the axis order the live feed expects.
type Bounds struct {
	// TopLeftY is the northern latitude edge
	TopLeftY float64

	// BottomRightY is the southern latitude edge
	BottomRightY float64

	// TopLeftX is the western longitude edge
	TopLeftX float64

	// BottomRightX is the eastern longitude edge
	BottomRightX float64
}

// String formats the rectangle as "tl_y,br_y,tl_x,br_x", the wire form of the
// live feed "bounds" parameter. Field ordering is not validated.
func (b Bounds) String() string {
	return formatCoordinate(b.TopLeftY) + "," +
		formatCoordinate(b.BottomRightY) + "," +
		formatCoordinate(b.TopLeftX) + "," +
		formatCoordinate(b.BottomRightX)
}

// BoundsAroundPoint returns the bounding rectangle for a point and a radius in
// meters. The point is treated as the center of a square whose half-diagonal
// equals the radius: the NE and SW corners are computed with the spherical
// destination-point formula at azimuths 45 and 225 degrees.
//
// Callers that need exact geofencing must post-filter by true distance; the
// rectangle only approximates a circle. The formula is kept exactly as the
// upstream service's ecosystem expects, including the fixed azimuth choice.
func BoundsAroundPoint(latitude, longitude, radiusMeters float64) Bounds {
	halfSideKm := math.Abs(radiusMeters) / 1000

	lat := latitude * DegreesToRadians
	lon := longitude * DegreesToRadians

	hypotenuse := math.Sqrt(2 * halfSideKm * halfSideKm)
	angular := hypotenuse / EarthRadiusKm

	latMin := math.Asin(math.Sin(lat)*math.Cos(angular) +
		math.Cos(lat)*math.Sin(angular)*math.Cos(225*DegreesToRadians))
	lonMin := lon + math.Atan2(
		math.Sin(225*DegreesToRadians)*math.Sin(angular)*math.Cos(lat),
		math.Cos(angular)-math.Sin(lat)*math.Sin(latMin))

	latMax := math.Asin(math.Sin(lat)*math.Cos(angular) +
		math.Cos(lat)*math.Sin(angular)*math.Cos(45*DegreesToRadians))
	lonMax := lon + math.Atan2(
		math.Sin(45*DegreesToRadians)*math.Sin(angular)*math.Cos(lat),
		math.Cos(angular)-math.Sin(lat)*math.Sin(latMax))

	return Bounds{
		TopLeftY:     latMax * RadiansToDegrees,
		BottomRightY: latMin * RadiansToDegrees,
		TopLeftX:     lonMin * RadiansToDegrees,
		BottomRightX: lonMax * RadiansToDegrees,
	}
}

// formatCoordinate renders a coordinate with the shortest representation that
// round-trips, matching how the upstream zone data prints its edges.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
