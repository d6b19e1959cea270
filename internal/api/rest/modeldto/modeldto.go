// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

import "encoding/json"

type (
	ResponseFullRoute struct {
		RouteID string          `json:"route_id"`
		Route   json.RawMessage `json:"route"`
	}

	ResponseStats struct {
		NRoutes int `json:"routes"`
		NUsers  int `json:"users"`
	}

	ResponseHealth struct {
		Status string `json:"status"`
	}
)
