// Package router provides functionality for computing, caching and retrieving sea routes.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/speps/go-hashids/v2"

	serviceErrors "github.com/danilovkiri/dk_go_searoute/internal/service/errors"
	"github.com/danilovkiri/dk_go_searoute/internal/service/geo"
	"github.com/danilovkiri/dk_go_searoute/internal/service/marnet"
	"github.com/danilovkiri/dk_go_searoute/internal/service/modelroute"
	"github.com/danilovkiri/dk_go_searoute/internal/service/router"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1"
	storageErrors "github.com/danilovkiri/dk_go_searoute/internal/storage/v1/errors"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/modelstorage"
)

const SaltKey = "Some Hashing Key"
const MinLength = 5

// Supported route types.
const (
	RouteTypeOriginal  = "original"
	RouteTypeGuided    = "guided"
	RouteTypeOptimized = "optimized"
)

// Route shaping constants.
const (
	waypointSpacing     = 3
	referenceProbeLimit = 5
	maxDeviationKm      = 200.0
	mergeThresholdKm    = 0.1
	offsetDegrees       = 0.1
)

// Check interface implementation explicitly
var (
	_ router.Processor = (*Router)(nil)
)

// Router struct defines data structure handling and provides support for adding new implementations.
type Router struct {
	SaltKey      string
	MinLength    int
	hashID       *hashids.HashID
	RouteStorage storage.RouteStorage
	graph        *marnet.Graph
	speedKnots   float64
}

// InitRouter initializes a Router object and sets its attributes.
func InitRouter(s storage.RouteStorage, g *marnet.Graph, speedKnots float64) (*Router, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if g == nil {
		return nil, &serviceErrors.ServiceFoundNilGraph{Msg: "nil network graph was passed to service initializer"}
	}
	hd := hashids.NewData()
	hd.Salt = SaltKey
	hd.MinLength = MinLength
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, &serviceErrors.ServiceInitHashError{Msg: err.Error()}
	}
	rtr := &Router{
		SaltKey:      SaltKey,
		MinLength:    MinLength,
		hashID:       hashID,
		RouteStorage: s,
		graph:        g,
		speedKnots:   speedKnots,
	}
	return rtr, nil
}

// GetRoute computes a route for a validated request, stores it under a new route ID
// and returns it. Identical requests resolve to the previously stored route.
func (r *Router) GetRoute(ctx context.Context, request modelroute.RouteRequest, userID string) (route modelroute.FullRoute, err error) {
	err = validateRequest(&request)
	if err != nil {
		return modelroute.FullRoute{}, err
	}
	digest := requestDigest(request)
	cached, err := r.RouteStorage.RetrieveByDigest(ctx, digest)
	if err == nil {
		return cached, nil
	}
	var notFoundError *storageErrors.NotFoundError
	if !errors.As(err, &notFoundError) {
		return modelroute.FullRoute{}, err
	}
	feature, err := r.buildRoute(request)
	if err != nil {
		return modelroute.FullRoute{}, err
	}
	routeID, err := r.generateSlug()
	if err != nil {
		return modelroute.FullRoute{}, &serviceErrors.ServiceEncodingHashError{Msg: err.Error()}
	}
	feature.Properties["route_id"] = routeID
	documentBytes, err := json.Marshal(feature)
	if err != nil {
		return modelroute.FullRoute{}, err
	}
	document := string(documentBytes)
	err = r.RouteStorage.Dump(ctx, document, routeID, digest, userID)
	if err != nil {
		var alreadyExistsError *storageErrors.AlreadyExistsError
		if errors.As(err, &alreadyExistsError) {
			return r.RouteStorage.RetrieveByDigest(ctx, digest)
		}
		return modelroute.FullRoute{}, err
	}
	return modelroute.FullRoute{RouteID: routeID, Document: document}, nil
}

// CompareRoutes computes all routing strategies plus the direct great-circle leg
// for one origin-destination pair and returns them keyed by strategy.
func (r *Router) CompareRoutes(ctx context.Context, request modelroute.RouteRequest) (document string, err error) {
	err = geo.ValidatePoint(request.Origin)
	if err != nil {
		return "", err
	}
	err = geo.ValidatePoint(request.Destination)
	if err != nil {
		return "", err
	}
	err = geo.ValidateUnits(request.Units)
	if err != nil {
		return "", err
	}
	original, err := r.originalRoute(request.Origin, request.Destination, request.Units)
	if err != nil {
		return "", err
	}
	optimized, err := r.optimizedRoute(request.Origin, request.Destination, request.Units)
	if err != nil {
		return "", err
	}
	guided, err := r.guidedRoute(request.Origin, request.Destination, request.Units)
	if err != nil {
		return "", err
	}
	results := map[string]*geojson.Feature{
		"original":  original,
		"optimized": optimized,
		"guided":    guided,
		"direct":    r.directRoute(request.Origin, request.Destination, request.Units),
	}
	documentBytes, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(documentBytes), nil
}

// Decode retrieves and returns a route document based on the given routeID as a key.
func (r *Router) Decode(ctx context.Context, routeID string) (document string, err error) {
	document, err = r.RouteStorage.Retrieve(ctx, routeID)
	if err != nil {
		return "", err
	}
	return document, nil
}

// DecodeByUserID retrieves and returns all route documents for a given user ID.
func (r *Router) DecodeByUserID(ctx context.Context, userID string) (routes []modelroute.FullRoute, err error) {
	routes, err = r.RouteStorage.RetrieveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// Delete performs soft removal of route entries with task management and resource allocation.
func (r *Router) Delete(ctx context.Context, routeIDs []string, userID string) {
	for i := 0; i < len(routeIDs); i++ {
		item := modelstorage.RouteChannelEntry{UserID: userID, RouteID: routeIDs[i]}
		r.RouteStorage.SendToQueue(item)
	}
}

// GetStats returns the number of stored routes and distinct users.
func (r *Router) GetStats(ctx context.Context) (nRoutes, nUsers int, err error) {
	return r.RouteStorage.GetStats(ctx)
}

func (r *Router) PingDB() error {
	err := r.RouteStorage.PingDB()
	return err
}

// buildRoute dispatches on the requested route type and applies course filtering.
func (r *Router) buildRoute(request modelroute.RouteRequest) (*geojson.Feature, error) {
	var feature *geojson.Feature
	var err error
	switch request.RouteType {
	case RouteTypeOptimized:
		feature, err = r.optimizedRoute(request.Origin, request.Destination, request.Units)
	case RouteTypeGuided:
		feature, err = r.guidedRoute(request.Origin, request.Destination, request.Units)
	case RouteTypeOriginal:
		feature, err = r.originalRoute(request.Origin, request.Destination, request.Units)
	}
	if err != nil {
		return nil, err
	}
	if request.Course != nil {
		r.applyCourseFilter(feature, request)
	}
	return feature, nil
}

// originalRoute returns the unmodified network path between the snapped endpoints.
func (r *Router) originalRoute(origin, destination orb.Point, units string) (*geojson.Feature, error) {
	coords, err := r.referenceCoords(origin, destination)
	if err != nil {
		return nil, err
	}
	return r.newRouteFeature(coords, units, "original"), nil
}

// guidedRoute follows the general shape of the network path but starts from the
// exact origin, keeping every waypointSpacing-th reference point.
func (r *Router) guidedRoute(origin, destination orb.Point, units string) (*geojson.Feature, error) {
	reference, err := r.referenceCoords(origin, destination)
	if err != nil {
		return nil, err
	}
	// a two-point reference means both endpoints snapped to the same lane segment,
	// an offset retry may still reach a proper network path
	if len(reference) <= 2 {
		offsetOrigin := orb.Point{origin.Lon() + offsetDegrees, origin.Lat() + offsetDegrees}
		offsetDest := orb.Point{destination.Lon() - offsetDegrees, destination.Lat() - offsetDegrees}
		alt, altErr := r.referenceCoords(offsetOrigin, offsetDest)
		if altErr == nil && len(alt) > 2 {
			reference = alt
		}
	}
	newCoords := orb.LineString{origin}
	if len(reference) > 2 {
		// pick the reference point among the first few whose bearing from the ship
		// deviates least from the bearing to the destination
		bestStartIdx := 1
		bestBearingDiff := 180.0
		shipToDestBearing := geo.Bearing(origin, destination)
		probeLimit := len(reference)
		if probeLimit > referenceProbeLimit {
			probeLimit = referenceProbeLimit
		}
		for i := 1; i < probeLimit; i++ {
			bearingToRefPoint := geo.Bearing(origin, reference[i])
			bearingDiff := geo.AngularDiff(bearingToRefPoint, shipToDestBearing)
			if bearingDiff < bestBearingDiff {
				bestBearingDiff = bearingDiff
				bestStartIdx = i
			}
		}
		for i := bestStartIdx; i < len(reference); i += waypointSpacing {
			newCoords = append(newCoords, reference[i])
		}
		// re-append the second-to-last reference point if the stride skipped past it
		if len(reference) > waypointSpacing {
			lastAddedIdx := bestStartIdx + ((len(reference)-bestStartIdx-1)/waypointSpacing)*waypointSpacing
			if lastAddedIdx < len(reference)-2 {
				newCoords = append(newCoords, reference[len(reference)-2])
			}
		}
	}
	if !newCoords[len(newCoords)-1].Equal(destination) {
		newCoords = append(newCoords, destination)
	}
	filtered := dedupeConsecutive(newCoords)
	feature := r.newRouteFeature(filtered, units, "guided")
	feature.Properties["reference_points_used"] = len(reference)
	feature.Properties["waypoints_created"] = len(filtered)
	return feature, nil
}

// optimizedRoute merges the exact origin onto the network path at the point scoring
// best on proximity and heading alignment.
func (r *Router) optimizedRoute(origin, destination orb.Point, units string) (*geojson.Feature, error) {
	reference, err := r.referenceCoords(origin, destination)
	if err != nil {
		return nil, err
	}
	mergeIdx, mergePoint := findOptimalMergePoint(origin, reference, maxDeviationKm)
	coords := orb.LineString{origin}
	if geo.DistanceKm(origin, mergePoint) > mergeThresholdKm {
		coords = append(coords, mergePoint)
	}
	coords = append(coords, reference[mergeIdx+1:]...)
	if !coords[len(coords)-1].Equal(destination) {
		coords = append(coords, destination)
	}
	feature := r.newRouteFeature(coords, units, "optimized_from_position")
	feature.Properties["merge_point_index"] = mergeIdx
	return feature, nil
}

// directRoute returns the single great-circle leg between two points.
func (r *Router) directRoute(origin, destination orb.Point, units string) *geojson.Feature {
	return r.newRouteFeature(orb.LineString{origin, destination}, units, "direct")
}

// applyCourseFilter drops leading waypoints whose bearing from the origin deviates
// from the current course by more than the heading tolerance.
func (r *Router) applyCourseFilter(feature *geojson.Feature, request modelroute.RouteRequest) {
	coords, ok := feature.Geometry.(orb.LineString)
	if !ok || len(coords) <= 1 {
		return
	}
	iKeep := 1
	for iKeep < len(coords) {
		brg := geo.Bearing(coords[0], coords[iKeep])
		if geo.AngularDiff(brg, *request.Course) <= request.HeadingTol {
			break
		}
		iKeep++
	}
	filtered := orb.LineString{coords[0]}
	filtered = append(filtered, coords[iKeep:]...)
	if !filtered[len(filtered)-1].Equal(request.Destination) {
		filtered = append(filtered, request.Destination)
	}
	length := geo.LineLength(filtered, request.Units)
	feature.Geometry = filtered
	feature.Properties["length"] = length
	feature.Properties["duration_hours"] = geo.DurationHours(length, request.Units, r.speedKnots)
}

// referenceCoords returns the network path between the snapped endpoints, bracketed
// by the exact origin and destination.
func (r *Router) referenceCoords(origin, destination orb.Point) (orb.LineString, error) {
	path, err := r.graph.ShortestPath(origin, destination)
	if err != nil {
		return nil, err
	}
	coords := make(orb.LineString, 0, len(path)+2)
	coords = append(coords, origin)
	coords = append(coords, path...)
	coords = append(coords, destination)
	return dedupeConsecutive(coords), nil
}

// newRouteFeature wraps coordinates into a GeoJSON feature with length and passage
// time properties.
func (r *Router) newRouteFeature(coords orb.LineString, units, routeType string) *geojson.Feature {
	feature := geojson.NewFeature(coords)
	length := geo.LineLength(coords, units)
	feature.Properties["length"] = length
	feature.Properties["units"] = units
	feature.Properties["duration_hours"] = geo.DurationHours(length, units, r.speedKnots)
	feature.Properties["route_type"] = routeType
	return feature
}

// findOptimalMergePoint scans the reference route forward from the point closest to
// the ship and scores candidates on distance plus a doubled heading penalty. When no
// candidate stays within maxDeviation it falls back to a point a quarter of the route
// ahead of the closest one.
func findOptimalMergePoint(shipPosition orb.Point, reference orb.LineString, maxDeviation float64) (int, orb.Point) {
	closestIdx := 0
	minDist := geo.DistanceKm(shipPosition, reference[0])
	for i := 1; i < len(reference); i++ {
		if d := geo.DistanceKm(shipPosition, reference[i]); d < minDist {
			minDist = d
			closestIdx = i
		}
	}
	bearingToDest := geo.Bearing(shipPosition, reference[len(reference)-1])
	bestMergeIdx := -1
	bestScore := 0.0
	for i := closestIdx; i < len(reference); i++ {
		distKm := geo.DistanceKm(shipPosition, reference[i])
		if distKm > maxDeviation {
			continue
		}
		bearingToPoint := geo.Bearing(shipPosition, reference[i])
		bearingDiff := geo.AngularDiff(bearingToPoint, bearingToDest)
		score := distKm + bearingDiff*2
		if bestMergeIdx < 0 || score < bestScore {
			bestScore = score
			bestMergeIdx = i
		}
	}
	if bestMergeIdx < 0 {
		forwardIdx := closestIdx + len(reference)/4
		if forwardIdx > len(reference)-1 {
			forwardIdx = len(reference) - 1
		}
		bestMergeIdx = forwardIdx
	}
	return bestMergeIdx, reference[bestMergeIdx]
}

// validateRequest checks coordinates, units, route type and the optional course.
func validateRequest(request *modelroute.RouteRequest) error {
	if err := geo.ValidatePoint(request.Origin); err != nil {
		return err
	}
	if err := geo.ValidatePoint(request.Destination); err != nil {
		return err
	}
	if err := geo.ValidateUnits(request.Units); err != nil {
		return err
	}
	switch request.RouteType {
	case RouteTypeOriginal, RouteTypeGuided, RouteTypeOptimized:
	default:
		return &serviceErrors.ServiceUnknownRouteType{Msg: request.RouteType + ": unknown route type, expected one of guided, optimized, original"}
	}
	if request.Course != nil {
		if *request.Course < 0 || *request.Course >= 360 {
			return &serviceErrors.ServiceIncorrectCourse{Msg: "course must be within [0, 360) degrees"}
		}
		if request.HeadingTol < 0 {
			return &serviceErrors.ServiceIncorrectCourse{Msg: "heading tolerance must be non-negative"}
		}
	}
	return nil
}

// requestDigest returns a stable cache key for one canonical routing request.
func requestDigest(request modelroute.RouteRequest) string {
	course := "none"
	headingTol := "none"
	if request.Course != nil {
		course = formatFloat(*request.Course)
		headingTol = formatFloat(request.HeadingTol)
	}
	key := strings.Join([]string{
		formatFloat(request.Origin.Lon()),
		formatFloat(request.Origin.Lat()),
		formatFloat(request.Destination.Lon()),
		formatFloat(request.Destination.Lat()),
		request.Units,
		request.RouteType,
		course,
		headingTol,
	}, "|")
	return strconv.FormatUint(xxhash.Sum64String(key), 16)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// dedupeConsecutive removes consecutive duplicate coordinates.
func dedupeConsecutive(coords orb.LineString) orb.LineString {
	filtered := orb.LineString{coords[0]}
	for i := 1; i < len(coords); i++ {
		if !coords[i].Equal(filtered[len(filtered)-1]) {
			filtered = append(filtered, coords[i])
		}
	}
	return filtered
}

// generateSlug generates and returns a short unique identifier for a route.
func (r *Router) generateSlug() (slug string, err error) {
	now := time.Now().UnixNano()
	slug, err = r.hashID.Encode([]int{int(now)})
	return slug, err
}
