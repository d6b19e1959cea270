// Package grpc provides functionality for initializing a GRPC server for the sea route service.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// SeaRouteServer defines the set of RPC methods of the route API. Messages reuse
// protobuf well-known types, route documents travel as structpb.Struct holding
// GeoJSON, so no generated bindings are needed.
type SeaRouteServer interface {
	GetRoute(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error)
	CompareRoutes(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error)
	GetRouteByID(ctx context.Context, request *wrapperspb.StringValue) (*structpb.Struct, error)
	GetRoutesByUserID(ctx context.Context, request *emptypb.Empty) (*structpb.ListValue, error)
	DeleteRouteBatch(ctx context.Context, request *structpb.ListValue) (*emptypb.Empty, error)
	GetStats(ctx context.Context, request *emptypb.Empty) (*structpb.Struct, error)
	PingDB(ctx context.Context, request *emptypb.Empty) (*emptypb.Empty, error)
	GetUptime(ctx context.Context, request *emptypb.Empty) (*wrapperspb.Int64Value, error)
}

// RegisterSeaRouteServer registers the service implementation with a GRPC server.
func RegisterSeaRouteServer(s grpc.ServiceRegistrar, srv SeaRouteServer) {
	s.RegisterService(&SeaRoute_ServiceDesc, srv)
}

func _SeaRoute_GetRoute_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).GetRoute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/GetRoute",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).GetRoute(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _SeaRoute_CompareRoutes_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).CompareRoutes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/CompareRoutes",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).CompareRoutes(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _SeaRoute_GetRouteByID_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).GetRouteByID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/GetRouteByID",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).GetRouteByID(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SeaRoute_GetRoutesByUserID_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).GetRoutesByUserID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/GetRoutesByUserID",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).GetRoutesByUserID(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SeaRoute_DeleteRouteBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).DeleteRouteBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/DeleteRouteBatch",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).DeleteRouteBatch(ctx, req.(*structpb.ListValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SeaRoute_GetStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/GetStats",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).GetStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SeaRoute_PingDB_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).PingDB(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/PingDB",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).PingDB(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SeaRoute_GetUptime_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeaRouteServer).GetUptime(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/searoute.SeaRoute/GetUptime",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SeaRouteServer).GetUptime(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// SeaRoute_ServiceDesc is the grpc.ServiceDesc for the SeaRoute service.
var SeaRoute_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "searoute.SeaRoute",
	HandlerType: (*SeaRouteServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetRoute",
			Handler:    _SeaRoute_GetRoute_Handler,
		},
		{
			MethodName: "CompareRoutes",
			Handler:    _SeaRoute_CompareRoutes_Handler,
		},
		{
			MethodName: "GetRouteByID",
			Handler:    _SeaRoute_GetRouteByID_Handler,
		},
		{
			MethodName: "GetRoutesByUserID",
			Handler:    _SeaRoute_GetRoutesByUserID_Handler,
		},
		{
			MethodName: "DeleteRouteBatch",
			Handler:    _SeaRoute_DeleteRouteBatch_Handler,
		},
		{
			MethodName: "GetStats",
			Handler:    _SeaRoute_GetStats_Handler,
		},
		{
			MethodName: "PingDB",
			Handler:    _SeaRoute_PingDB_Handler,
		},
		{
			MethodName: "GetUptime",
			Handler:    _SeaRoute_GetUptime_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
}
