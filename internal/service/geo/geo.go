// Package geo provides great-circle primitives shared by the routing services.
// All points follow the GeoJSON convention, longitude first.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	serviceErrors "github.com/danilovkiri/dk_go_searoute/internal/service/errors"
)

// Supported distance units.
const (
	UnitsNaut = "naut"
	UnitsKm   = "km"
	UnitsMi   = "mi"
)

// Unit conversion constants, kilometers to target units.
const (
	kmToNaut = 0.539957
	kmToMi   = 0.621371
)

// Speed conversion constants, knots to target units per hour.
const (
	knotsToKmh = 1.852
	knotsToMph = 1.150779
)

// ValidateUnits checks that the given units identifier is supported.
func ValidateUnits(units string) error {
	switch units {
	case UnitsNaut, UnitsKm, UnitsMi:
		return nil
	default:
		return &serviceErrors.ServiceUnknownUnits{Msg: units + ": unknown units, expected one of naut, km, mi"}
	}
}

// ValidatePoint checks that the given point holds in-range WGS84 coordinates.
func ValidatePoint(p orb.Point) error {
	if p.Lat() < -90.0 || p.Lat() > 90.0 {
		return &serviceErrors.ServiceIncorrectCoordinates{Msg: "latitude must be between -90 and 90 degrees"}
	}
	if p.Lon() < -180.0 || p.Lon() > 180.0 {
		return &serviceErrors.ServiceIncorrectCoordinates{Msg: "longitude must be between -180 and 180 degrees"}
	}
	return nil
}

// Bearing returns the initial great-circle bearing from p1 to p2 in degrees within [0, 360).
func Bearing(p1, p2 orb.Point) float64 {
	return math.Mod(orbgeo.Bearing(p1, p2)+360.0, 360.0)
}

// AngularDiff returns the smallest difference between two angles in degrees within [0, 180].
func AngularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360.0)
	if d > 180.0 {
		return 360.0 - d
	}
	return d
}

// DistanceKm returns the great-circle distance between two points in kilometers.
func DistanceKm(p1, p2 orb.Point) float64 {
	return orbgeo.DistanceHaversine(p1, p2) / 1000.0
}

// Distance returns the great-circle distance between two points in the requested units.
func Distance(p1, p2 orb.Point, units string) float64 {
	return FromKm(DistanceKm(p1, p2), units)
}

// FromKm converts a distance in kilometers to the requested units.
func FromKm(distKm float64, units string) float64 {
	switch units {
	case UnitsNaut:
		return distKm * kmToNaut
	case UnitsMi:
		return distKm * kmToMi
	default:
		return distKm
	}
}

// DurationHours returns passage time for a route of the given length at a cruising
// speed given in knots, with the speed converted to the units of the length.
func DurationHours(length float64, units string, speedKnots float64) float64 {
	speed := speedKnots
	switch units {
	case UnitsKm:
		speed = speedKnots * knotsToKmh
	case UnitsMi:
		speed = speedKnots * knotsToMph
	}
	if speed <= 0 {
		return 0
	}
	return length / speed
}

// LineLength returns the cumulative great-circle length of a line in the requested units.
func LineLength(line orb.LineString, units string) float64 {
	var total float64
	for i := 0; i < len(line)-1; i++ {
		total += Distance(line[i], line[i+1], units)
	}
	return total
}
