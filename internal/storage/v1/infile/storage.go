// Package infile provides data types and methods for local file storage operations.
package infile

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

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
	mu       sync.Mutex
	Cfg      *config.Config
	DB       map[string]modelstorage.RouteMapEntry
	byDigest map[string]string
	Encoder  *json.Encoder
	ch       chan modelstorage.RouteChannelEntry
}

// InitStorage initializes a Storage object, sets its attributes and starts the delete queue worker.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config) (*Storage, error) {
	st := Storage{
		Cfg:      cfg,
		DB:       make(map[string]modelstorage.RouteMapEntry),
		byDigest: make(map[string]string),
		ch:       make(chan modelstorage.RouteChannelEntry, 64),
	}
	err := st.restore()
	if err != nil {
		log.Fatal(err)
	}
	// open file outside goroutine since this operation might not finish prior to encoding operations
	file, err := os.OpenFile(st.Cfg.FileStoragePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0777)
	if err != nil {
		log.Fatal(err)
	}
	// set an encoder
	st.Encoder = json.NewEncoder(file)
	// start a goroutine to listen for ctx cancellation followed by file storage closure,
	// use sync.WaitGroup to prevent goroutine premature termination when main exits
	go func() {
		defer wg.Done()
		st.listenToDeleteQueue(ctx)
		err := file.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Println("File storage closed successfully")
	}()
	return &st, nil
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
		err := s.addToFileDB(routeID, digest, document, userID, false)
		if err != nil {
			dumpError <- &storageErrors.FileWriteError{Err: err}
			return
		}
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

// DeleteBatch performs a soft delete of route entries owned by one user, appending tombstones.
func (s *Storage) DeleteBatch(ctx context.Context, routeIDs []string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, routeID := range routeIDs {
		entry, ok := s.DB[routeID]
		if !ok || entry.UserID != userID || entry.IsDeleted {
			continue
		}
		entry.IsDeleted = true
		s.DB[routeID] = entry
		err := s.addToFileDB(routeID, entry.Digest, entry.Document, entry.UserID, true)
		if err != nil {
			return &storageErrors.FileWriteError{Err: err}
		}
	}
	return nil
}

// SendToQueue adds a deletion task to the delete queue.
func (s *Storage) SendToQueue(item modelstorage.RouteChannelEntry) {
	s.ch <- item
}

// listenToDeleteQueue aggregates deletion tasks and flushes them per user on a ticker.
func (s *Storage) listenToDeleteQueue(ctx context.Context) {
	ticker := time.NewTicker(deleteFlushInterval)
	defer ticker.Stop()
	pending := make(map[string][]string)
	flush := func() {
		for userID, routeIDs := range pending {
			err := s.DeleteBatch(context.Background(), routeIDs, userID)
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

// restore fills the tmpfs DB with route entries from file storage.
func (s *Storage) restore() error {
	file, err := os.OpenFile(s.Cfg.FileStoragePath, os.O_RDONLY|os.O_CREATE, 0777)
	if err != nil {
		return err
	}
	defer file.Close()
	reader := bufio.NewScanner(file)
	reader.Buffer(make([]byte, 1024*1024), 1024*1024)
	for reader.Scan() {
		var storageEntry modelstorage.RouteStorageEntry
		err := json.Unmarshal(reader.Bytes(), &storageEntry)
		if err != nil {
			return err
		}
		s.DB[storageEntry.RouteID] = modelstorage.RouteMapEntry{
			Digest:    storageEntry.Digest,
			Document:  storageEntry.Document,
			UserID:    storageEntry.UserID,
			IsDeleted: storageEntry.IsDeleted,
		}
		s.byDigest[storageEntry.Digest] = storageEntry.RouteID
	}
	log.Print("DB was restored")
	return nil
}

// addToFileDB appends one route entry to a file DB.
func (s *Storage) addToFileDB(routeID, digest, document, userID string, isDeleted bool) error {
	rowToEncode := modelstorage.RouteStorageEntry{
		RouteID:   routeID,
		Digest:    digest,
		Document:  document,
		UserID:    userID,
		IsDeleted: isDeleted,
	}
	return s.Encoder.Encode(rowToEncode)
}

// PingDB is a mock for PSQL DB pinger for infile DB handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for infile DB handling.
func (s *Storage) CloseDB() error {
	return nil
}
