// Package inpsql provides data types and methods for PSQL storage operations.
package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/lib/pq"

	"github.com/danilovkiri/dk_go_searoute/internal/config"
	"github.com/danilovkiri/dk_go_searoute/internal/service/modelroute"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1"
	storageErrors "github.com/danilovkiri/dk_go_searoute/internal/storage/v1/errors"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.RouteStorage = (*Storage)(nil)
)

const deleteFlushInterval = 5 * time.Second

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu  sync.Mutex
	Cfg *config.Config
	DB  *sql.DB
	ch  chan modelstorage.RouteChannelEntry
}

// InitStorage initializes a Storage object, sets its attributes and starts the delete queue worker.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config) (*Storage, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	st := Storage{
		Cfg: cfg,
		DB:  db,
		ch:  make(chan modelstorage.RouteChannelEntry, 64),
	}
	err = st.createTable(ctx)
	if err != nil {
		log.Fatal(err)
	}
	go func() {
		defer wg.Done()
		st.listenToDeleteQueue(ctx)
		err := st.DB.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Println("PSQL DB connection closed successfully")
	}()
	return &st, nil
}

// Retrieve returns a route document corresponding to routeID.
func (s *Storage) Retrieve(ctx context.Context, routeID string) (document string, err error) {
	query := `SELECT document, is_deleted FROM routes WHERE route_id = $1`
	var isDeleted bool
	err = s.DB.QueryRowContext(ctx, query, routeID).Scan(&document, &isDeleted)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", &storageErrors.NotFoundError{Err: err, RouteID: routeID}
	case errors.Is(err, context.DeadlineExceeded):
		return "", &storageErrors.ContextTimeoutExceededError{Err: err}
	case err != nil:
		return "", &storageErrors.ExecutionPSQLError{Err: err}
	}
	if isDeleted {
		return "", &storageErrors.DeletedError{Err: nil, RouteID: routeID}
	}
	return document, nil
}

// RetrieveByDigest returns a stored route document matching a request digest.
func (s *Storage) RetrieveByDigest(ctx context.Context, digest string) (route modelroute.FullRoute, err error) {
	// deletion hides a route from its owner's history but keeps the cache warm
	query := `SELECT route_id, document FROM routes WHERE digest = $1`
	err = s.DB.QueryRowContext(ctx, query, digest).Scan(&route.RouteID, &route.Document)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return modelroute.FullRoute{}, &storageErrors.NotFoundError{Err: err, RouteID: digest}
	case errors.Is(err, context.DeadlineExceeded):
		return modelroute.FullRoute{}, &storageErrors.ContextTimeoutExceededError{Err: err}
	case err != nil:
		return modelroute.FullRoute{}, &storageErrors.ExecutionPSQLError{Err: err}
	}
	return route, nil
}

// RetrieveByUserID returns a slice of route documents for one particular user ID.
func (s *Storage) RetrieveByUserID(ctx context.Context, userID string) (routes []modelroute.FullRoute, err error) {
	query := `SELECT route_id, document FROM routes WHERE user_id = $1 AND NOT is_deleted`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return nil, &storageErrors.ContextTimeoutExceededError{Err: err}
	case err != nil:
		return nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var route modelroute.FullRoute
		if err := rows.Scan(&route.RouteID, &route.Document); err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	return routes, nil
}

// Dump stores a route document under routeID unless its digest is already known.
func (s *Storage) Dump(ctx context.Context, document string, routeID string, digest string, userID string) error {
	query := `INSERT INTO routes (user_id, route_id, digest, document) VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query, userID, routeID, digest, document)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			validRouteID, lookupErr := s.lookupByDigest(ctx, digest)
			if lookupErr != nil {
				return lookupErr
			}
			return &storageErrors.AlreadyExistsError{Err: err, Digest: digest, ValidRouteID: validRouteID}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return &storageErrors.ContextTimeoutExceededError{Err: err}
		}
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	return nil
}

// GetStats returns the number of stored routes and distinct users.
func (s *Storage) GetStats(ctx context.Context) (nRoutes, nUsers int, err error) {
	query := `SELECT count(*), count(DISTINCT user_id) FROM routes WHERE NOT is_deleted`
	err = s.DB.QueryRowContext(ctx, query).Scan(&nRoutes, &nUsers)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return 0, 0, &storageErrors.ContextTimeoutExceededError{Err: err}
	case err != nil:
		return 0, 0, &storageErrors.ExecutionPSQLError{Err: err}
	}
	return nRoutes, nUsers, nil
}

// DeleteBatch performs a soft delete of route entries owned by one user.
func (s *Storage) DeleteBatch(ctx context.Context, routeIDs []string, userID string) error {
	query := `UPDATE routes SET is_deleted = TRUE WHERE route_id = ANY($1) AND user_id = $2`
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.DB.ExecContext(ctx, query, pq.Array(routeIDs), userID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &storageErrors.ContextTimeoutExceededError{Err: err}
		}
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	log.Println("Deleting routes: done for user", userID)
	return nil
}

// SendToQueue adds a deletion task to the delete queue.
func (s *Storage) SendToQueue(item modelstorage.RouteChannelEntry) {
	s.ch <- item
}

// PingDB checks the PSQL DB connection status.
func (s *Storage) PingDB() error {
	return s.DB.Ping()
}

// CloseDB closes the PSQL DB connection.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

// listenToDeleteQueue aggregates deletion tasks and flushes them per user on a ticker.
func (s *Storage) listenToDeleteQueue(ctx context.Context) {
	ticker := time.NewTicker(deleteFlushInterval)
	defer ticker.Stop()
	pending := make(map[string][]string)
	flush := func() {
		for userID, routeIDs := range pending {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := s.DeleteBatch(flushCtx, routeIDs, userID)
			cancel()
			if err != nil {
				log.Println("Deleting routes:", err)
			}
		}
		pending = make(map[string][]string)
	}
	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case item := <-s.ch:
			pending[item.UserID] = append(pending[item.UserID], item.RouteID)
		case <-ticker.C:
			flush()
		}
	}
}

// lookupByDigest resolves the route ID already stored for a digest.
func (s *Storage) lookupByDigest(ctx context.Context, digest string) (string, error) {
	query := `SELECT route_id FROM routes WHERE digest = $1`
	var routeID string
	err := s.DB.QueryRowContext(ctx, query, digest).Scan(&routeID)
	if err != nil {
		return "", &storageErrors.ExecutionPSQLError{Err: err}
	}
	return routeID, nil
}

// createTable creates a table for PSQL DB storage if not exist.
func (s *Storage) createTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS routes (
		id bigserial not null,
		user_id text not null,
		route_id text not null unique,
		digest text not null unique,
		document text not null,
		is_deleted boolean not null default false
	);`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}
