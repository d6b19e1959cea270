// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"

	"github.com/danilovkiri/dk_go_searoute/internal/service/modelroute"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/modelstorage"
)

// RouteSetter defines a set of methods for types implementing RouteSetter.
type RouteSetter interface {
	Dump(ctx context.Context, document string, routeID string, digest string, userID string) error
}

// RouteBatchDeleter defines a set of methods for types implementing RouteBatchDeleter.
type RouteBatchDeleter interface {
	DeleteBatch(ctx context.Context, routeIDs []string, userID string) error
	SendToQueue(item modelstorage.RouteChannelEntry)
}

// RouteGetter defines a set of methods for types implementing RouteGetter.
type RouteGetter interface {
	Retrieve(ctx context.Context, routeID string) (document string, err error)
}

// RouteGetterByDigest defines a set of methods for types implementing RouteGetterByDigest.
type RouteGetterByDigest interface {
	RetrieveByDigest(ctx context.Context, digest string) (route modelroute.FullRoute, err error)
}

// RouteGetterByUserID defines a set of methods for types implementing RouteGetterByUserID.
type RouteGetterByUserID interface {
	RetrieveByUserID(ctx context.Context, userID string) (routes []modelroute.FullRoute, err error)
}

// StatsProvider defines a set of methods for types implementing StatsProvider.
type StatsProvider interface {
	GetStats(ctx context.Context) (nRoutes int, nUsers int, err error)
}

// Pinger defines a set of methods for types implementing Pinger.
type Pinger interface {
	PingDB() error
}

// Closer defines a set of methods for types implementing Closer.
type Closer interface {
	CloseDB() error
}

// RouteStorage defines a set of embedded interfaces for types implementing RouteStorage.
type RouteStorage interface {
	RouteSetter
	RouteBatchDeleter
	RouteGetter
	RouteGetterByDigest
	RouteGetterByUserID
	StatsProvider
	Pinger
	Closer
}
