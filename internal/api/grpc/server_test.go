package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	grpccore "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danilovkiri/dk_go_searoute/internal/api/grpc/interceptors"
	"github.com/danilovkiri/dk_go_searoute/internal/config"
	"github.com/danilovkiri/dk_go_searoute/internal/service/marnet"
	"github.com/danilovkiri/dk_go_searoute/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/inmemory"
)

type ServerTestSuite struct {
	suite.Suite
	storage          storage.RouteStorage
	secretaryService *secretary.Secretary
	authHandler      *interceptors.AuthHandler
	server           *RouteServer
	s                *grpccore.Server
	conn             *grpccore.ClientConn
	ctx              context.Context
	cancel           context.CancelFunc
	token            string
}

func (suite *ServerTestSuite) SetupTest() {
	cfg := config.NewDefaultConfiguration()
	cfg.UserKey = "jds__63h3_7ds"
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	suite.storage = inmemory.InitStorage()
	graph, err := marnet.InitDefaultGraph()
	if err != nil {
		suite.T().Fatal(err)
	}
	suite.server, err = InitServer(suite.ctx, cfg, suite.storage, graph)
	if err != nil {
		suite.T().Fatal(err)
	}
	suite.secretaryService, _ = secretary.NewSecretaryService(cfg)
	suite.authHandler = interceptors.NewAuthHandler(suite.secretaryService, cfg)
	suite.s = grpccore.NewServer(grpccore.UnaryInterceptor(suite.authHandler.UnaryServerInterceptor()))
	RegisterSeaRouteServer(suite.s, suite.server)
	listen, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		suite.T().Fatal(err)
	}
	go suite.s.Serve(listen)
	suite.conn, err = grpccore.Dial(listen.Addr().String(), grpccore.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		suite.T().Fatal(err)
	}
	suite.token = suite.secretaryService.Encode("someUserID")
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.conn.Close()
	suite.s.GracefulStop()
	suite.cancel()
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) authCtx() context.Context {
	md := metadata.New(map[string]string{interceptors.UserAuthKey: suite.token})
	return metadata.NewOutgoingContext(context.Background(), md)
}

func (suite *ServerTestSuite) routeRequest() *structpb.Struct {
	request, err := structpb.NewStruct(map[string]interface{}{
		"start_lat": 51.9,
		"start_lng": 4.0,
		"end_lat":   1.3,
		"end_lng":   103.8,
	})
	if err != nil {
		suite.T().Fatal(err)
	}
	return request
}

func (suite *ServerTestSuite) TestPingDB() {
	var request, response emptypb.Empty
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/PingDB", &request, &response)
	assert.NoError(suite.T(), err)
}

func (suite *ServerTestSuite) TestGetUptime() {
	var request emptypb.Empty
	var response wrapperspb.Int64Value
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetUptime", &request, &response)
	assert.NoError(suite.T(), err)
	assert.GreaterOrEqual(suite.T(), response.GetValue(), int64(0))
}

func (suite *ServerTestSuite) TestGetRoute() {
	var response structpb.Struct
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRoute", suite.routeRequest(), &response)
	assert.NoError(suite.T(), err)
	fields := response.GetFields()
	assert.Equal(suite.T(), "Feature", fields["type"].GetStringValue())
	properties := fields["properties"].GetStructValue().GetFields()
	assert.Equal(suite.T(), "guided", properties["route_type"].GetStringValue())
	assert.NotEmpty(suite.T(), properties["route_id"].GetStringValue())
}

func (suite *ServerTestSuite) TestGetRoute_InvalidArgument() {
	request, err := structpb.NewStruct(map[string]interface{}{
		"start_lat": 51.9,
		"start_lng": 4.0,
		"end_lat":   1.3,
		"end_lng":   103.8,
		"units":     "furlongs",
	})
	if err != nil {
		suite.T().Fatal(err)
	}
	var response structpb.Struct
	err = suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRoute", request, &response)
	if e, ok := status.FromError(err); ok {
		assert.Equal(suite.T(), codes.InvalidArgument, e.Code())
	} else {
		suite.T().Fatal("Error code was not retrieved")
	}
}

func (suite *ServerTestSuite) TestCompareRoutes() {
	var response structpb.Struct
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/CompareRoutes", suite.routeRequest(), &response)
	assert.NoError(suite.T(), err)
	fields := response.GetFields()
	for _, key := range []string{"original", "optimized", "guided", "direct"} {
		_, ok := fields[key]
		assert.True(suite.T(), ok)
	}
}

func (suite *ServerTestSuite) TestGetRouteByID() {
	var routeResponse structpb.Struct
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRoute", suite.routeRequest(), &routeResponse)
	assert.NoError(suite.T(), err)
	routeID := routeResponse.GetFields()["properties"].GetStructValue().GetFields()["route_id"].GetStringValue()

	request := wrapperspb.String(routeID)
	var response structpb.Struct
	err = suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRouteByID", request, &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), routeID, response.GetFields()["properties"].GetStructValue().GetFields()["route_id"].GetStringValue())
}

func (suite *ServerTestSuite) TestGetRouteByID_NotFound() {
	request := wrapperspb.String("nonexistent")
	var response structpb.Struct
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRouteByID", request, &response)
	if e, ok := status.FromError(err); ok {
		assert.Equal(suite.T(), codes.NotFound, e.Code())
	} else {
		suite.T().Fatal("Error code was not retrieved")
	}
}

func (suite *ServerTestSuite) TestGetRoutesByUserID() {
	// a fresh user has no routes yet
	var emptyRequest emptypb.Empty
	var listResponse structpb.ListValue
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRoutesByUserID", &emptyRequest, &listResponse)
	if e, ok := status.FromError(err); ok {
		assert.Equal(suite.T(), codes.NotFound, e.Code())
	} else {
		suite.T().Fatal("Error code was not retrieved")
	}

	var routeResponse structpb.Struct
	err = suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRoute", suite.routeRequest(), &routeResponse)
	assert.NoError(suite.T(), err)

	err = suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRoutesByUserID", &emptyRequest, &listResponse)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, len(listResponse.GetValues()))
}

func (suite *ServerTestSuite) TestDeleteRouteBatch() {
	var routeResponse structpb.Struct
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRoute", suite.routeRequest(), &routeResponse)
	assert.NoError(suite.T(), err)
	routeID := routeResponse.GetFields()["properties"].GetStructValue().GetFields()["route_id"].GetStringValue()

	request, err := structpb.NewList([]interface{}{routeID})
	if err != nil {
		suite.T().Fatal(err)
	}
	var response emptypb.Empty
	err = suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/DeleteRouteBatch", request, &response)
	assert.NoError(suite.T(), err)

	// tmpfs storage deletes synchronously, direct retrieval must report removal
	byIDRequest := wrapperspb.String(routeID)
	var byIDResponse structpb.Struct
	err = suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetRouteByID", byIDRequest, &byIDResponse)
	if e, ok := status.FromError(err); ok {
		assert.Equal(suite.T(), codes.NotFound, e.Code())
	} else {
		suite.T().Fatal("Error code was not retrieved")
	}
}

func (suite *ServerTestSuite) TestGetStats() {
	var request emptypb.Empty
	var response structpb.Struct
	err := suite.conn.Invoke(suite.authCtx(), "/searoute.SeaRoute/GetStats", &request, &response)
	assert.NoError(suite.T(), err)
	fields := response.GetFields()
	assert.GreaterOrEqual(suite.T(), fields["routes"].GetNumberValue(), 0.0)
	assert.GreaterOrEqual(suite.T(), fields["users"].GetNumberValue(), 0.0)
}
