package grpc

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danilovkiri/dk_go_searoute/internal/api/grpc/handlers"
	"github.com/danilovkiri/dk_go_searoute/internal/config"
	"github.com/danilovkiri/dk_go_searoute/internal/service/marnet"
	routerService "github.com/danilovkiri/dk_go_searoute/internal/service/router/v1"
	secretaryService "github.com/danilovkiri/dk_go_searoute/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1"
)

var (
	serverStart = time.Now()
)

// uptime returns time in seconds since the server start-up.
func uptime() int64 {
	return int64(time.Since(serverStart).Seconds())
}

// Check interface implementation explicitly
var (
	_ SeaRouteServer = (*RouteServer)(nil)
)

// RouteServer defines server methods and attributes.
type RouteServer struct {
	grpcHandler *handlers.GRPCHandler
}

// InitServer returns a RouteServer object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, storage storage.RouteStorage, graph *marnet.Graph) (server *RouteServer, err error) {
	routerSvc, err := routerService.InitRouter(storage, graph, cfg.SpeedKnots)
	if err != nil {
		return nil, err
	}
	secretary, err := secretaryService.NewSecretaryService(cfg)
	if err != nil {
		return nil, err
	}
	grpcHandler, err := handlers.InitGRPCHandler(routerSvc, secretary, cfg)
	if err != nil {
		return nil, err
	}
	return &RouteServer{grpcHandler: grpcHandler}, nil
}

// GetUptime is a GRPC method for getting server uptime data.
func (s *RouteServer) GetUptime(_ context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(uptime()), nil
}

// PingDB is a GRPC method to check DB connection and establish it if closed.
func (s *RouteServer) PingDB(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	err := s.grpcHandler.HandlePingDB()
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

// GetStats is a GRPC method to retrieve storage usage stats.
func (s *RouteServer) GetStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	result, err := s.grpcHandler.HandleGetStats(ctx)
	return result, err
}

// GetRoute is a GRPC method for computing a sea route between two points.
func (s *RouteServer) GetRoute(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	result, err := s.grpcHandler.HandleGetRoute(ctx, request)
	return result, err
}

// CompareRoutes is a GRPC method for computing every routing strategy for one pair of points.
func (s *RouteServer) CompareRoutes(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	result, err := s.grpcHandler.HandleCompareRoutes(ctx, request)
	return result, err
}

// GetRouteByID is a GRPC method for getting a stored route document based on its route ID.
func (s *RouteServer) GetRouteByID(ctx context.Context, request *wrapperspb.StringValue) (*structpb.Struct, error) {
	result, err := s.grpcHandler.HandleGetRouteByID(ctx, request.GetValue())
	return result, err
}

// GetRoutesByUserID is a GRPC method for getting all user-specific route documents.
func (s *RouteServer) GetRoutesByUserID(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	result, err := s.grpcHandler.HandleGetRoutesByUserID(ctx)
	return result, err
}

// DeleteRouteBatch is a GRPC method for deleting stored entries based on a batch of route IDs.
func (s *RouteServer) DeleteRouteBatch(ctx context.Context, request *structpb.ListValue) (*emptypb.Empty, error) {
	err := s.grpcHandler.HandleDeleteRouteBatch(ctx, request)
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}
