// Package router provides interfaces for types to be in compliance with.
package router

import (
	"context"

	"github.com/danilovkiri/dk_go_searoute/internal/service/modelroute"
)

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	GetRoute(ctx context.Context, request modelroute.RouteRequest, userID string) (route modelroute.FullRoute, err error)
	CompareRoutes(ctx context.Context, request modelroute.RouteRequest) (document string, err error)
	Decode(ctx context.Context, routeID string) (document string, err error)
	DecodeByUserID(ctx context.Context, userID string) (routes []modelroute.FullRoute, err error)
	Delete(ctx context.Context, routeIDs []string, userID string)
	GetStats(ctx context.Context) (nRoutes int, nUsers int, err error)
	PingDB() error
}
