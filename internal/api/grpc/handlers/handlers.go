// Package handlers provides GRPC handler functions to be used for service methods.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danilovkiri/dk_go_searoute/internal/api/grpc/interceptors"
	"github.com/danilovkiri/dk_go_searoute/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_searoute/internal/service/errors"
	"github.com/danilovkiri/dk_go_searoute/internal/service/geo"
	"github.com/danilovkiri/dk_go_searoute/internal/service/modelroute"
	"github.com/danilovkiri/dk_go_searoute/internal/service/router"
	routerService "github.com/danilovkiri/dk_go_searoute/internal/service/router/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/service/secretary"
	storageErrors "github.com/danilovkiri/dk_go_searoute/internal/storage/v1/errors"
)

const defaultHeadingTol = 45.0

// GRPCHandler defines data structure handling and provides support for adding new implementations.
type GRPCHandler struct {
	processor    router.Processor
	sec          secretary.Secretary
	serverConfig *config.Config
}

// InitGRPCHandler initializes a GRPCHandler object and sets its attributes.
func InitGRPCHandler(processor router.Processor, sec secretary.Secretary, serverConfig *config.Config) (*GRPCHandler, error) {
	if processor == nil {
		return nil, fmt.Errorf("nil Router Service was passed to GRPC Handler initializer")
	}
	if sec == nil {
		return nil, fmt.Errorf("nil Secretary Service was passed to GRPC Handler initializer")
	}
	return &GRPCHandler{processor: processor, sec: sec, serverConfig: serverConfig}, nil
}

// HandleGetRoute computes a sea route for the request parameters and returns it as a
// GeoJSON document.
func (h *GRPCHandler) HandleGetRoute(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	userID, err := h.getUserID(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	routeRequest, err := parseRouteRequest(request)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	route, err := h.processor.GetRoute(ctx, routeRequest, userID)
	if err != nil {
		return nil, serviceStatusError(err)
	}
	return documentToStruct(route.Document)
}

// HandleCompareRoutes computes every routing strategy for one origin-destination pair.
func (h *GRPCHandler) HandleCompareRoutes(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	routeRequest, err := parseRouteRequest(request)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	document, err := h.processor.CompareRoutes(ctx, routeRequest)
	if err != nil {
		return nil, serviceStatusError(err)
	}
	return documentToStruct(document)
}

// HandleGetRouteByID returns a previously computed route document by its route ID.
func (h *GRPCHandler) HandleGetRouteByID(ctx context.Context, routeID string) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	document, err := h.processor.Decode(ctx, routeID)
	if err != nil {
		return nil, serviceStatusError(err)
	}
	return documentToStruct(document)
}

// HandleGetRoutesByUserID returns all route documents of the requesting user.
func (h *GRPCHandler) HandleGetRoutesByUserID(ctx context.Context) (*structpb.ListValue, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	userID, err := h.getUserID(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	routes, err := h.processor.DecodeByUserID(ctx, userID)
	if err != nil {
		return nil, serviceStatusError(err)
	}
	if len(routes) == 0 {
		return nil, status.Error(codes.NotFound, `No content available`)
	}
	elements := make([]interface{}, 0, len(routes))
	for _, route := range routes {
		var document map[string]interface{}
		err = json.Unmarshal([]byte(route.Document), &document)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		elements = append(elements, map[string]interface{}{
			"route_id": route.RouteID,
			"route":    document,
		})
	}
	response, err := structpb.NewList(elements)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return response, nil
}

// HandleDeleteRouteBatch sets a tag for deletion for a batch of route entries.
func (h *GRPCHandler) HandleDeleteRouteBatch(ctx context.Context, request *structpb.ListValue) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	userID, err := h.getUserID(ctx)
	if err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	routeIDs := make([]string, 0, len(request.GetValues()))
	for _, value := range request.GetValues() {
		routeIDs = append(routeIDs, value.GetStringValue())
	}
	h.processor.Delete(ctx, routeIDs, userID)
	return nil
}

// HandleGetStats provides client with statistics on routes and clients.
func (h *GRPCHandler) HandleGetStats(ctx context.Context) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	nRoutes, nUsers, err := h.processor.GetStats(ctx)
	if err != nil {
		return nil, serviceStatusError(err)
	}
	response, err := structpb.NewStruct(map[string]interface{}{
		"routes": nRoutes,
		"users":  nUsers,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return response, nil
}

// HandlePingDB handles PSQL DB pinging to check connection status.
func (h *GRPCHandler) HandlePingDB() error {
	err := h.processor.PingDB()
	if err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	return nil
}

// getUserID deciphers the user identifier from the authentication token in GRPC metadata.
func (h *GRPCHandler) getUserID(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("GRPC metadata was not found")
	}
	values := md.Get(interceptors.UserAuthKey)
	if len(values) <= 0 {
		return "", errors.New("empty array of values was found for user key")
	}
	userID, err := h.sec.Decode(values[0])
	if err != nil {
		return "", err
	}
	return userID, nil
}

// parseRouteRequest extracts a routing query from a structpb request, applying the
// service defaults for omitted optional fields.
func parseRouteRequest(request *structpb.Struct) (modelroute.RouteRequest, error) {
	fields := request.GetFields()
	startLat, err := requiredNumber(fields, "start_lat")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	startLng, err := requiredNumber(fields, "start_lng")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	endLat, err := requiredNumber(fields, "end_lat")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	endLng, err := requiredNumber(fields, "end_lng")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	routeRequest := modelroute.RouteRequest{
		Origin:      orb.Point{startLng, startLat},
		Destination: orb.Point{endLng, endLat},
		Units:       geo.UnitsNaut,
		RouteType:   routerService.RouteTypeGuided,
		HeadingTol:  defaultHeadingTol,
	}
	if value, ok := fields["units"]; ok {
		routeRequest.Units = value.GetStringValue()
	}
	if value, ok := fields["route_type"]; ok {
		routeRequest.RouteType = value.GetStringValue()
	}
	if value, ok := fields["course"]; ok {
		course := value.GetNumberValue()
		routeRequest.Course = &course
	}
	if value, ok := fields["heading_tol"]; ok {
		routeRequest.HeadingTol = value.GetNumberValue()
	}
	return routeRequest, nil
}

func requiredNumber(fields map[string]*structpb.Value, name string) (float64, error) {
	value, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%s is a required request field", name)
	}
	return value.GetNumberValue(), nil
}

// documentToStruct converts a JSON route document into a structpb response.
func documentToStruct(document string) (*structpb.Struct, error) {
	var parsed map[string]interface{}
	err := json.Unmarshal([]byte(document), &parsed)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	response, err := structpb.NewStruct(parsed)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return response, nil
}

// serviceStatusError maps service and storage errors to GRPC status errors.
func serviceStatusError(err error) error {
	var (
		incorrectCoordinates *serviceErrors.ServiceIncorrectCoordinates
		unknownUnits         *serviceErrors.ServiceUnknownUnits
		unknownRouteType     *serviceErrors.ServiceUnknownRouteType
		incorrectCourse      *serviceErrors.ServiceIncorrectCourse
		notFoundError        *storageErrors.NotFoundError
		deletedError         *storageErrors.DeletedError
		timeoutError         *storageErrors.ContextTimeoutExceededError
	)
	switch {
	case errors.As(err, &incorrectCoordinates),
		errors.As(err, &unknownUnits),
		errors.As(err, &unknownRouteType),
		errors.As(err, &incorrectCourse):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &notFoundError), errors.As(err, &deletedError):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &timeoutError):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
