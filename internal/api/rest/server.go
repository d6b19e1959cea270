// Package rest provides functionality for initializing a server for the sea route service.
package rest

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/danilovkiri/dk_go_searoute/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_searoute/internal/api/rest/middleware"
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
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, storage storage.RouteStorage, graph *marnet.Graph) (server *http.Server, err error) {
	routerSvc, err := routerService.InitRouter(storage, graph, cfg.SpeedKnots)
	if err != nil {
		return nil, err
	}
	secretary, err := secretaryService.NewSecretaryService(cfg)
	if err != nil {
		return nil, err
	}
	routeHandler, err := handlers.InitRouteHandler(routerSvc, secretary)
	if err != nil {
		return nil, err
	}
	cookieHandler, err := middleware.NewCookieHandler(secretary, cfg)
	if err != nil {
		return nil, err
	}
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg)
	r := chi.NewRouter()
	r.Use(cookieHandler.CookieHandle)
	r.Use(middleware.CompressHandle)
	r.Use(middleware.DecompressHandle)
	r.Get("/route", routeHandler.HandleGetRoute())
	r.Get("/route/compare", routeHandler.HandleCompareRoutes())
	r.Get("/api/routes/{routeID}", routeHandler.HandleGetRouteByID())
	r.Get("/api/user/routes", routeHandler.HandleGetRoutesByUserID())
	r.Delete("/api/user/routes", routeHandler.HandleDeleteRouteBatch())
	r.Get("/ping", routeHandler.HandlePingDB())
	r.Get("/health", routeHandler.HandleHealth())
	r.Route("/api/internal", func(r chi.Router) {
		r.Use(trustedNetHandler.TrustedNetworkHandler)
		r.Get("/stats", routeHandler.HandleGetStats())
	})
	r.Mount("/debug", chiMiddleware.Profiler()) // see https://github.com/go-chi/chi/blob/master/middleware/profiler.go
	expvar.Publish("system.uptime", expvar.Func(uptime))

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv, nil
}
