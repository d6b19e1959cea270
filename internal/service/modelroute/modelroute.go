// Package modelroute provides locally used types and their structure for route objects.
package modelroute

import "github.com/paulmach/orb"

// FullRoute is a stored route document together with its public identifier.
type FullRoute struct {
	RouteID  string
	Document string
}

// RouteRequest holds one validated routing query. Course is nil when no course
// filtering was requested.
type RouteRequest struct {
	Origin      orb.Point
	Destination orb.Point
	Units       string
	RouteType   string
	Course      *float64
	HeadingTol  float64
}
