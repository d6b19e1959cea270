// Package inmemory provides data types and methods for thread-safe tmpfs storage operations.
package inmemory

import (
	"context"
	"log"
	"sync"

	"github.com/danilovkiri/dk_go_searoute/internal/service/modelroute"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1"
	storageErrors "github.com/danilovkiri/dk_go_searoute/internal/storage/v1/errors"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.RouteStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu       sync.Mutex
	DB       map[string]modelstorage.RouteMapEntry
	byDigest map[string]string
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage() *Storage {
	return &Storage{
		DB:       make(map[string]modelstorage.RouteMapEntry),
		byDigest: make(map[string]string),
	}
}

// Retrieve returns a route document corresponding to routeID.
func (s *Storage) Retrieve(ctx context.Context, routeID string) (document string, err error) {
	retrieveDone := make(chan string)
	retrieveError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry, ok := s.DB[routeID]
		if !ok {
			retrieveError <- &storageErrors.NotFoundError{Err: nil, RouteID: routeID}
			return
		}
		if entry.IsDeleted {
			retrieveError <- &storageErrors.DeletedError{Err: nil, RouteID: routeID}
			return
		}
		retrieveDone <- entry.Document
	}()

	select {
	case <-ctx.Done():
		log.Println("Retrieving route:", ctx.Err())
		return "", &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case rtrvError := <-retrieveError:
		log.Println("Retrieving route:", rtrvError.Error())
		return "", rtrvError
	case document := <-retrieveDone:
		log.Println("Retrieving route:", routeID)
		return document, nil
	}
}

// RetrieveByDigest returns a stored route document matching a request digest.
func (s *Storage) RetrieveByDigest(ctx context.Context, digest string) (route modelroute.FullRoute, err error) {
	retrieveDone := make(chan modelroute.FullRoute)
	retrieveError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		routeID, ok := s.byDigest[digest]
		if !ok {
			retrieveError <- &storageErrors.NotFoundError{Err: nil, RouteID: digest}
			return
		}
		// deletion hides a route from its owner's history but keeps the cache warm
		retrieveDone <- modelroute.FullRoute{RouteID: routeID, Document: s.DB[routeID].Document}
	}()

	select {
	case <-ctx.Done():
		log.Println("Retrieving route by digest:", ctx.Err())
		return modelroute.FullRoute{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case rtrvError := <-retrieveError:
		return modelroute.FullRoute{}, rtrvError
	case route := <-retrieveDone:
		log.Println("Retrieving route by digest:", digest, "as", route.RouteID)
		return route, nil
	}
}

// RetrieveByUserID returns a slice of route documents for one particular user ID.
func (s *Storage) RetrieveByUserID(ctx context.Context, userID string) (routes []modelroute.FullRoute, err error) {
	retrieveDone := make(chan []modelroute.FullRoute)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		var routes []modelroute.FullRoute
		for routeID, entry := range s.DB {
			if entry.UserID == userID && !entry.IsDeleted {
				routes = append(routes, modelroute.FullRoute{
					RouteID:  routeID,
					Document: entry.Document,
				})
			}
		}
		retrieveDone <- routes
	}()

	select {
	case <-ctx.Done():
		log.Println("Retrieving routes by user ID:", ctx.Err())
		return nil, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case routes := <-retrieveDone:
		return routes, nil
	}
}

// Dump stores a route document under routeID unless its digest is already known.
func (s *Storage) Dump(ctx context.Context, document string, routeID string, digest string, userID string) error {
	dumpDone := make(chan bool)
	dumpError := make(chan error)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if validRouteID, ok := s.byDigest[digest]; ok {
			dumpError <- &storageErrors.AlreadyExistsError{Err: nil, Digest: digest, ValidRouteID: validRouteID}
			return
		}
		s.DB[routeID] = modelstorage.RouteMapEntry{Digest: digest, Document: document, UserID: userID}
		s.byDigest[digest] = routeID
		dumpDone <- true
	}()

	select {
	case <-ctx.Done():
		log.Println("Dumping route:", ctx.Err())
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case dmpError := <-dumpError:
		log.Println("Dumping route:", dmpError.Error())
		return dmpError
	case <-dumpDone:
		log.Println("Dumping route:", routeID)
		return nil
	}
}

// GetStats returns the number of stored routes and distinct users.
func (s *Storage) GetStats(ctx context.Context) (nRoutes, nUsers int, err error) {
	retrieveDone := make(chan []int, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		countRoutes := 0
		uniqueUsers := map[string]bool{}
		for _, entry := range s.DB {
			if entry.IsDeleted {
				continue
			}
			countRoutes++
			uniqueUsers[entry.UserID] = true
		}
		retrieveDone <- []int{countRoutes, len(uniqueUsers)}
	}()

	select {
	case <-ctx.Done():
		log.Println("Retrieving stats:", ctx.Err())
		return 0, 0, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case stats := <-retrieveDone:
		return stats[0], stats[1], nil
	}
}

// DeleteBatch performs a soft delete of route entries owned by one user.
func (s *Storage) DeleteBatch(ctx context.Context, routeIDs []string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, routeID := range routeIDs {
		entry, ok := s.DB[routeID]
		if !ok || entry.UserID != userID {
			continue
		}
		entry.IsDeleted = true
		s.DB[routeID] = entry
	}
	return nil
}

// SendToQueue performs an immediate soft delete since no flush cycle is needed in tmpfs.
func (s *Storage) SendToQueue(item modelstorage.RouteChannelEntry) {
	_ = s.DeleteBatch(context.Background(), []string{item.RouteID}, item.UserID)
}

// PingDB is a mock for PSQL DB pinger for tmpfs DB handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for tmpfs DB handling.
func (s *Storage) CloseDB() error {
	return nil
}
