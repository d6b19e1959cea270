// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

type RouteStorageEntry struct {
	RouteID   string `json:"routeID"`
	Digest    string `json:"digest"`
	Document  string `json:"document"`
	UserID    string `json:"userID"`
	IsDeleted bool   `json:"isDeleted,omitempty"`
}

type RouteMapEntry struct {
	Digest    string
	Document  string
	UserID    string
	IsDeleted bool
}

type RoutePostgresEntry struct {
	ID        uint   `db:"id"`
	UserID    string `db:"user_id"` // store as a string since we store encoded tokens
	RouteID   string `db:"route_id"`
	Digest    string `db:"digest"`
	Document  string `db:"document"`
	IsDeleted bool   `db:"is_deleted"`
}

type RouteChannelEntry struct {
	UserID  string
	RouteID string
}
