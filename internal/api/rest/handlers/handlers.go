// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/paulmach/orb"

	"github.com/danilovkiri/dk_go_searoute/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_searoute/internal/api/rest/modeldto"
	serviceErrors "github.com/danilovkiri/dk_go_searoute/internal/service/errors"
	"github.com/danilovkiri/dk_go_searoute/internal/service/geo"
	"github.com/danilovkiri/dk_go_searoute/internal/service/marnet"
	"github.com/danilovkiri/dk_go_searoute/internal/service/modelroute"
	"github.com/danilovkiri/dk_go_searoute/internal/service/router"
	routerService "github.com/danilovkiri/dk_go_searoute/internal/service/router/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/service/secretary"
	storageErrors "github.com/danilovkiri/dk_go_searoute/internal/storage/v1/errors"
)

// ContentTypeGeoJSON is served for single route feature documents.
const ContentTypeGeoJSON = "application/geo+json"

const defaultHeadingTol = 45.0

// RouteHandler defines data structure handling and provides support for adding new implementations.
type RouteHandler struct {
	processor router.Processor
	sec       secretary.Secretary
}

// InitRouteHandler initializes a RouteHandler object and sets its attributes.
func InitRouteHandler(processor router.Processor, sec secretary.Secretary) (*RouteHandler, error) {
	if processor == nil {
		return nil, fmt.Errorf("nil Router Service was passed to Route Handler initializer")
	}
	if sec == nil {
		return nil, fmt.Errorf("nil Secretary Service was passed to Route Handler initializer")
	}
	return &RouteHandler{processor: processor, sec: sec}, nil
}

// HandleGetRoute computes a sea route for the query parameters and returns it as a
// GeoJSON feature. Identical queries resolve to the same stored route.
func (h *RouteHandler) HandleGetRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, err := h.getUserID(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		request, err := parseRouteRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("GET route request detected for", request.Origin, request.Destination)
		route, err := h.processor.GetRoute(ctx, request, userID)
		if err != nil {
			log.Println("HandleGetRoute:", err)
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		log.Println("HandleGetRoute: served route", route.RouteID)
		w.Header().Set("Content-Type", ContentTypeGeoJSON)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(route.Document))
	}
}

// HandleCompareRoutes computes every routing strategy for one origin-destination
// pair and returns them keyed by strategy name.
func (h *RouteHandler) HandleCompareRoutes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		request, err := parseRouteRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("GET route comparison request detected for", request.Origin, request.Destination)
		document, err := h.processor.CompareRoutes(ctx, request)
		if err != nil {
			log.Println("HandleCompareRoutes:", err)
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(document))
	}
}

// HandleGetRouteByID returns a previously computed route document by its route ID.
func (h *RouteHandler) HandleGetRouteByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		routeID := chi.URLParam(r, "routeID")
		log.Println("GET request detected for", routeID)
		document, err := h.processor.Decode(ctx, routeID)
		if err != nil {
			log.Println("HandleGetRouteByID:", err)
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		w.Header().Set("Content-Type", ContentTypeGeoJSON)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(document))
	}
}

// HandleGetRoutesByUserID returns all route documents of the requesting user.
func (h *RouteHandler) HandleGetRoutesByUserID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, err := h.getUserID(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		routes, err := h.processor.DecodeByUserID(ctx, userID)
		if err != nil {
			log.Println("HandleGetRoutesByUserID:", err)
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		if len(routes) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		responseRoutes := make([]modeldto.ResponseFullRoute, 0, len(routes))
		for _, route := range routes {
			responseRoutes = append(responseRoutes, modeldto.ResponseFullRoute{
				RouteID: route.RouteID,
				Route:   json.RawMessage(route.Document),
			})
		}
		resBody, err := json.Marshal(responseRoutes)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(resBody)
	}
}

// HandleDeleteRouteBatch accepts a JSON array of route IDs and schedules their
// asynchronous soft removal for the requesting user.
func (h *RouteHandler) HandleDeleteRouteBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, err := h.getUserID(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var routeIDs []string
		err = json.Unmarshal(b, &routeIDs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("DELETE request detected for", routeIDs)
		h.processor.Delete(ctx, routeIDs, userID)
		w.WriteHeader(http.StatusAccepted)
	}
}

// HandleGetStats returns amounts of stored routes and users.
func (h *RouteHandler) HandleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		nRoutes, nUsers, err := h.processor.GetStats(ctx)
		if err != nil {
			log.Println("HandleGetStats:", err)
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		resData := modeldto.ResponseStats{
			NRoutes: nRoutes,
			NUsers:  nUsers,
		}
		resBody, err := json.Marshal(resData)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(resBody)
	}
}

// HandlePingDB handles PSQL DB pinging to check connection status.
func (h *RouteHandler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.processor.PingDB()
		if err != nil {
			http.Error(w, "DB connection is down", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleHealth reports service liveness for container orchestration probes.
func (h *RouteHandler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resBody, err := json.Marshal(modeldto.ResponseHealth{Status: "ok"})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(resBody)
	}
}

// getUserID deciphers the user identifier from the authentication cookie.
func (h *RouteHandler) getUserID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(middleware.UserCookieKey)
	if err != nil {
		return "", err
	}
	userID, err := h.sec.Decode(cookie.Value)
	if err != nil {
		return "", err
	}
	return userID, nil
}

// parseRouteRequest extracts a routing query from URL parameters, applying the
// service defaults for omitted optional parameters.
func parseRouteRequest(r *http.Request) (modelroute.RouteRequest, error) {
	query := r.URL.Query()
	startLat, err := requiredFloat(query.Get("start_lat"), "start_lat")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	startLng, err := requiredFloat(query.Get("start_lng"), "start_lng")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	endLat, err := requiredFloat(query.Get("end_lat"), "end_lat")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	endLng, err := requiredFloat(query.Get("end_lng"), "end_lng")
	if err != nil {
		return modelroute.RouteRequest{}, err
	}
	request := modelroute.RouteRequest{
		Origin:      orb.Point{startLng, startLat},
		Destination: orb.Point{endLng, endLat},
		Units:       geo.UnitsNaut,
		RouteType:   routerService.RouteTypeGuided,
		HeadingTol:  defaultHeadingTol,
	}
	if units := query.Get("units"); units != "" {
		request.Units = units
	}
	if routeType := query.Get("route_type"); routeType != "" {
		request.RouteType = routeType
	}
	if courseStr := query.Get("course"); courseStr != "" {
		course, err := strconv.ParseFloat(courseStr, 64)
		if err != nil {
			return modelroute.RouteRequest{}, fmt.Errorf("course: %w", err)
		}
		request.Course = &course
	}
	if tolStr := query.Get("heading_tol"); tolStr != "" {
		tol, err := strconv.ParseFloat(tolStr, 64)
		if err != nil {
			return modelroute.RouteRequest{}, fmt.Errorf("heading_tol: %w", err)
		}
		request.HeadingTol = tol
	}
	return request, nil
}

func requiredFloat(value, name string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("%s is a required query parameter", name)
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return parsed, nil
}

// statusForError maps service and storage errors to HTTP status codes.
func statusForError(err error) int {
	var (
		incorrectCoordinates *serviceErrors.ServiceIncorrectCoordinates
		unknownUnits         *serviceErrors.ServiceUnknownUnits
		unknownRouteType     *serviceErrors.ServiceUnknownRouteType
		incorrectCourse      *serviceErrors.ServiceIncorrectCourse
		notFoundError        *storageErrors.NotFoundError
		deletedError         *storageErrors.DeletedError
		timeoutError         *storageErrors.ContextTimeoutExceededError
		noSeaRouteError      *marnet.NoSeaRouteError
	)
	switch {
	case errors.As(err, &incorrectCoordinates),
		errors.As(err, &unknownUnits),
		errors.As(err, &unknownRouteType),
		errors.As(err, &incorrectCourse):
		return http.StatusBadRequest
	case errors.As(err, &notFoundError):
		return http.StatusNotFound
	case errors.As(err, &deletedError):
		return http.StatusGone
	case errors.As(err, &timeoutError):
		return http.StatusGatewayTimeout
	case errors.As(err, &noSeaRouteError):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
