package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_searoute/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_searoute/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_searoute/internal/config"
	"github.com/danilovkiri/dk_go_searoute/internal/service/marnet"
	routerInterface "github.com/danilovkiri/dk_go_searoute/internal/service/router"
	"github.com/danilovkiri/dk_go_searoute/internal/service/router/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/inmemory"
)

type HandlersTestSuite struct {
	suite.Suite
	storage       storage.RouteStorage
	routerService routerInterface.Processor
	routeHandler  *RouteHandler
	cookieHandler *middleware.CookieHandler
	router        *chi.Mux
	ts            *httptest.Server
	ctx           context.Context
	cancel        context.CancelFunc
}

func (suite *HandlersTestSuite) SetupTest() {
	cfg := config.NewDefaultConfiguration()
	// necessary to set default parameters here since they are set in cfg.Parse() which causes error
	cfg.ServerAddress = ":8000"
	cfg.TrustedSubnet = "127.0.0.0/8"
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	suite.storage = inmemory.InitStorage()
	graph, err := marnet.InitDefaultGraph()
	if err != nil {
		suite.T().Fatal(err)
	}
	suite.routerService, _ = router.InitRouter(suite.storage, graph, cfg.SpeedKnots)
	secretaryService, _ := secretary.NewSecretaryService(cfg)
	suite.routeHandler, _ = InitRouteHandler(suite.routerService, secretaryService)
	suite.cookieHandler, _ = middleware.NewCookieHandler(secretaryService, cfg)
	suite.router = chi.NewRouter()
	suite.ts = httptest.NewServer(suite.router)
}

// TestHandlersTestSuite initializes test suite for being accessible
func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) TestHandleGetRoute() {
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Get("/route", suite.routeHandler.HandleGetRoute())

	// set tests' parameters
	type want struct {
		code        int
		contentType string
	}
	tests := []struct {
		name   string
		params map[string]string
		want   want
	}{
		{
			name: "Correct GET query",
			params: map[string]string{
				"start_lat": "51.9",
				"start_lng": "4.0",
				"end_lat":   "1.3",
				"end_lng":   "103.8",
			},
			want: want{
				code:        200,
				contentType: ContentTypeGeoJSON,
			},
		},
		{
			name: "Missing required parameter",
			params: map[string]string{
				"start_lat": "51.9",
				"start_lng": "4.0",
				"end_lat":   "1.3",
			},
			want: want{
				code: 400,
			},
		},
		{
			name: "Unknown units",
			params: map[string]string{
				"start_lat": "51.9",
				"start_lng": "4.0",
				"end_lat":   "1.3",
				"end_lng":   "103.8",
				"units":     "furlongs",
			},
			want: want{
				code: 400,
			},
		},
		{
			name: "Unknown route type",
			params: map[string]string{
				"start_lat":  "51.9",
				"start_lng":  "4.0",
				"end_lat":    "1.3",
				"end_lng":    "103.8",
				"route_type": "scenic",
			},
			want: want{
				code: 400,
			},
		},
		{
			name: "Latitude out of range",
			params: map[string]string{
				"start_lat": "95.0",
				"start_lng": "4.0",
				"end_lat":   "1.3",
				"end_lng":   "103.8",
			},
			want: want{
				code: 400,
			},
		},
		{
			name: "Course out of range",
			params: map[string]string{
				"start_lat": "51.9",
				"start_lng": "4.0",
				"end_lat":   "1.3",
				"end_lng":   "103.8",
				"course":    "400",
			},
			want: want{
				code: 400,
			},
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			client := resty.New()
			res, err := client.R().SetQueryParams(tt.params).Get(suite.ts.URL + "/route")
			if err != nil {
				t.Fatalf(err.Error())
			}
			assert.Equal(t, tt.want.code, res.StatusCode())
			if tt.want.contentType != "" {
				assert.Equal(t, tt.want.contentType, res.Header().Get("Content-Type"))
			}
		})
	}
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleGetRouteCached() {
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Get("/route", suite.routeHandler.HandleGetRoute())
	params := map[string]string{
		"start_lat": "51.9",
		"start_lng": "4.0",
		"end_lat":   "1.3",
		"end_lng":   "103.8",
	}
	client := resty.New()
	res1, err := client.R().SetQueryParams(params).Get(suite.ts.URL + "/route")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	res2, err := client.R().SetQueryParams(params).Get(suite.ts.URL + "/route")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 200, res1.StatusCode())
	assert.Equal(suite.T(), 200, res2.StatusCode())
	// identical requests resolve to the same stored document
	assert.Equal(suite.T(), res1.Body(), res2.Body())
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleCompareRoutes() {
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Get("/route/compare", suite.routeHandler.HandleCompareRoutes())
	params := map[string]string{
		"start_lat": "51.9",
		"start_lng": "4.0",
		"end_lat":   "1.3",
		"end_lng":   "103.8",
	}
	client := resty.New()
	res, err := client.R().SetQueryParams(params).Get(suite.ts.URL + "/route/compare")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 200, res.StatusCode())
	var results map[string]json.RawMessage
	err = json.Unmarshal(res.Body(), &results)
	assert.NoError(suite.T(), err)
	for _, key := range []string{"original", "optimized", "guided", "direct"} {
		_, ok := results[key]
		assert.True(suite.T(), ok)
	}
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleGetRouteByID() {
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Get("/route", suite.routeHandler.HandleGetRoute())
	suite.router.Get("/api/routes/{routeID}", suite.routeHandler.HandleGetRouteByID())
	params := map[string]string{
		"start_lat": "51.9",
		"start_lng": "4.0",
		"end_lat":   "1.3",
		"end_lng":   "103.8",
	}
	client := resty.New()
	res, err := client.R().SetQueryParams(params).Get(suite.ts.URL + "/route")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	var feature struct {
		Properties map[string]interface{} `json:"properties"`
	}
	err = json.Unmarshal(res.Body(), &feature)
	assert.NoError(suite.T(), err)
	routeID := feature.Properties["route_id"].(string)

	resByID, err := client.R().Get(suite.ts.URL + "/api/routes/" + routeID)
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 200, resByID.StatusCode())
	assert.Equal(suite.T(), res.Body(), resByID.Body())

	resUnknown, err := client.R().Get(suite.ts.URL + "/api/routes/nonexistent")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 404, resUnknown.StatusCode())
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleGetRoutesByUserID() {
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Get("/route", suite.routeHandler.HandleGetRoute())
	suite.router.Get("/api/user/routes", suite.routeHandler.HandleGetRoutesByUserID())

	// a fresh user has no routes yet
	client := resty.New()
	resEmpty, err := client.R().Get(suite.ts.URL + "/api/user/routes")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 204, resEmpty.StatusCode())

	params := map[string]string{
		"start_lat": "51.9",
		"start_lng": "4.0",
		"end_lat":   "1.3",
		"end_lng":   "103.8",
	}
	_, err = client.R().SetQueryParams(params).Get(suite.ts.URL + "/route")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	res, err := client.R().Get(suite.ts.URL + "/api/user/routes")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 200, res.StatusCode())
	var routes []modeldto.ResponseFullRoute
	err = json.Unmarshal(res.Body(), &routes)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, len(routes))
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleDeleteRouteBatch() {
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Get("/route", suite.routeHandler.HandleGetRoute())
	suite.router.Delete("/api/user/routes", suite.routeHandler.HandleDeleteRouteBatch())
	suite.router.Get("/api/user/routes", suite.routeHandler.HandleGetRoutesByUserID())

	params := map[string]string{
		"start_lat": "51.9",
		"start_lng": "4.0",
		"end_lat":   "1.3",
		"end_lng":   "103.8",
	}
	client := resty.New()
	res, err := client.R().SetQueryParams(params).Get(suite.ts.URL + "/route")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	var feature struct {
		Properties map[string]interface{} `json:"properties"`
	}
	err = json.Unmarshal(res.Body(), &feature)
	assert.NoError(suite.T(), err)
	routeID := feature.Properties["route_id"].(string)

	resDelete, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody([]string{routeID}).
		Delete(suite.ts.URL + "/api/user/routes")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 202, resDelete.StatusCode())

	// tmpfs storage deletes synchronously, history must be empty afterwards
	resHistory, err := client.R().Get(suite.ts.URL + "/api/user/routes")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 204, resHistory.StatusCode())
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleDeleteRouteBatchBadBody() {
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Delete("/api/user/routes", suite.routeHandler.HandleDeleteRouteBatch())
	client := resty.New()
	res, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody("not-a-json-array").
		Delete(suite.ts.URL + "/api/user/routes")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 400, res.StatusCode())
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleGetStats() {
	cfg := config.NewDefaultConfiguration()
	cfg.TrustedSubnet = "127.0.0.0/8"
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg)
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Route("/api/internal", func(r chi.Router) {
		r.Use(trustedNetHandler.TrustedNetworkHandler)
		r.Get("/stats", suite.routeHandler.HandleGetStats())
	})
	client := resty.New()
	res, err := client.R().Get(suite.ts.URL + "/api/internal/stats")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 200, res.StatusCode())
	var stats modeldto.ResponseStats
	err = json.Unmarshal(res.Body(), &stats)
	assert.NoError(suite.T(), err)
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleGetStatsForbidden() {
	cfg := config.NewDefaultConfiguration()
	cfg.TrustedSubnet = ""
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg)
	suite.router.Use(suite.cookieHandler.CookieHandle)
	suite.router.Route("/api/internal", func(r chi.Router) {
		r.Use(trustedNetHandler.TrustedNetworkHandler)
		r.Get("/stats", suite.routeHandler.HandleGetStats())
	})
	client := resty.New()
	res, err := client.R().Get(suite.ts.URL + "/api/internal/stats")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 403, res.StatusCode())
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandlePingDB() {
	suite.router.Get("/ping", suite.routeHandler.HandlePingDB())
	client := resty.New()
	res, err := client.R().Get(suite.ts.URL + "/ping")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 200, res.StatusCode())
	defer suite.ts.Close()
	suite.cancel()
}

func (suite *HandlersTestSuite) TestHandleHealth() {
	suite.router.Get("/health", suite.routeHandler.HandleHealth())
	client := resty.New()
	res, err := client.R().Get(suite.ts.URL + "/health")
	if err != nil {
		suite.T().Fatalf(err.Error())
	}
	assert.Equal(suite.T(), 200, res.StatusCode())
	var health modeldto.ResponseHealth
	err = json.Unmarshal(res.Body(), &health)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ok", health.Status)
	defer suite.ts.Close()
	suite.cancel()
}
