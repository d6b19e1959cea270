package marnet

import (
	"fmt"

	"github.com/paulmach/orb"
)

type (
	// NetworkParseError signals malformed network GeoJSON.
	NetworkParseError struct {
		Err error
	}
	// EmptyNetworkError signals a network without a single sea lane.
	EmptyNetworkError struct {
	}
	// NoSeaRouteError signals that no connected sea path exists between two points.
	NoSeaRouteError struct {
		Origin      orb.Point
		Destination orb.Point
	}
)

func (e *NetworkParseError) Error() string {
	return fmt.Sprintf("%s: could not parse network GeoJSON", e.Err.Error())
}

func (e *NetworkParseError) Unwrap() error {
	return e.Err
}

func (e *EmptyNetworkError) Error() string {
	return "network holds no sea lanes"
}

func (e *NoSeaRouteError) Error() string {
	return fmt.Sprintf("no sea route between [%v, %v] and [%v, %v]",
		e.Origin.Lon(), e.Origin.Lat(), e.Destination.Lon(), e.Destination.Lat())
}
