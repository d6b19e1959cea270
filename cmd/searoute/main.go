package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/crypto/acme/autocert"

	"github.com/danilovkiri/dk_go_searoute/internal/api/rest"
	"github.com/danilovkiri/dk_go_searoute/internal/config"
	"github.com/danilovkiri/dk_go_searoute/internal/service/marnet"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/infile"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/inmemory"
	"github.com/danilovkiri/dk_go_searoute/internal/storage/v1/inpsql"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func printBuildMetadata() {
	// print out build parameters
	switch buildVersion {
	case "":
		fmt.Printf("Build version: %s\n", "N/A")
	default:
		fmt.Printf("Build version: %s\n", buildVersion)
	}
	switch buildDate {
	case "":
		fmt.Printf("Build date: %s\n", "N/A")
	default:
		fmt.Printf("Build date: %s\n", buildDate)
	}
	switch buildCommit {
	case "":
		fmt.Printf("Build commit: %s\n", "N/A")
	default:
		fmt.Printf("Build commit: %s\n", buildCommit)
	}
}

func main() {
	// print out build parameters
	printBuildMetadata()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// add a waiting group
	wg := &sync.WaitGroup{}
	// get configuration
	cfg := config.NewDefaultConfiguration()
	err := cfg.Parse()
	if err != nil {
		log.Fatal(err)
	}
	// initialize the maritime network graph, the embedded network is used unless a path is set
	var graph *marnet.Graph
	switch cfg.MarnetPath {
	case "":
		graph, err = marnet.InitDefaultGraph()
	default:
		graph, err = marnet.InitGraphFromFile(cfg.MarnetPath)
	}
	if err != nil {
		log.Fatal(err)
	}
	// initialize (or retrieve if present) storage, switch between "inmemory", "infile" and "inpsql" modules
	var errInit error
	var storageInit storage.RouteStorage
	switch {
	case cfg.DatabaseDSN != "":
		// set number of wg members to 1 (this will be the listenToDeleteQueue goroutine)
		wg.Add(1)
		storageInit, errInit = inpsql.InitStorage(ctx, wg, cfg)
	case cfg.FileStoragePath != "":
		wg.Add(1)
		storageInit, errInit = infile.InitStorage(ctx, wg, cfg)
	default:
		storageInit = inmemory.InitStorage()
	}
	if errInit != nil {
		log.Fatal(errInit)
	}
	// initialize server
	server, err := rest.InitServer(ctx, cfg, storageInit, graph)
	if err != nil {
		log.Fatal(err)
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		log.Print("Server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(ctx, 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			log.Fatal("Server shutdown failed:", err)
		}
		cancel()
	}()
	// start up the server
	log.Print("Server start attempted")
	switch cfg.EnableHTTPS {
	case true:
		manager := &autocert.Manager{
			Prompt: autocert.AcceptTOS,
			Cache:  autocert.DirCache(".certs"),
		}
		server.TLSConfig = manager.TLSConfig()
		err = server.ListenAndServeTLS("", "")
	default:
		err = server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	// wait for goroutine in InitStorage to finish before exiting
	wg.Wait()
	log.Print("Server shutdown succeeded")
}
