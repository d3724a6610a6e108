package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dandigam/village-health-hub-sub001/internal/api"
	"github.com/dandigam/village-health-hub-sub001/internal/authz"
	"github.com/dandigam/village-health-hub-sub001/internal/config"
	"github.com/dandigam/village-health-hub-sub001/internal/fetch"
	"github.com/dandigam/village-health-hub-sub001/internal/session"
	"github.com/dandigam/village-health-hub-sub001/internal/session/storage/file"
	"github.com/dandigam/village-health-hub-sub001/internal/session/storage/inmem"
	"github.com/dandigam/village-health-hub-sub001/internal/session/storage/postgres"
	"github.com/dandigam/village-health-hub-sub001/internal/task"
	"github.com/dandigam/village-health-hub-sub001/internal/telemetry"
	"github.com/dandigam/village-health-hub-sub001/internal/transport"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the session record storage driver
	log.Info().Str("driver", cfg.SessionStorageDriver).Msg("initializing session storage...")
	storage, err := newSessionStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unknown session storage driver")
	}
	if err := storage.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the session storage")
	}
	defer storage.Close()

	// Create the request outcome tracker and schedule a task that flushes it
	tracker := telemetry.NewTracker()
	flushingTask := task.NewRepeating(func() {
		if n := tracker.Flush(); n > 0 {
			log.Debug().Int("amount", n).Msg("flushed request outcome counters")
		}
	}, time.Minute)
	flushingTask.Start()
	defer flushingTask.Stop(true)

	// Wire the backend client, the session store and the data-access gateways.
	// The client pulls the bearer token of whatever session is current at request time.
	var sessions *session.Store
	client := transport.New(cfg.BackendBaseAddress, cfg.BackendRequestTimeout, transport.TokenSourceFunc(func() (string, bool) {
		if sessions == nil {
			return "", false
		}
		return sessions.Token()
	}), tracker)
	sessions = session.NewStore(storage, session.NewBackendAuthenticator(client), cfg.OfflineLoginEnabled())
	defer sessions.Close()

	// Restore a persisted session, if any
	if err := sessions.Restore(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not restore the persisted session")
	}

	// Start up the console API
	log.Info().Str("console_api", cfg.ConsoleListenAddress).Msg("starting up the console API...")
	apis := &api.Service{
		Config:   cfg,
		Sessions: sessions,
		Gate:     authz.NewGate(authz.Defaults()),
		Resolver: fetch.NewResolver(client, tracker),
		Mutator:  fetch.NewMutator(client),
	}
	apiErrs := make(chan error, 1)
	apis.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the console API raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the console API...")
		apis.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}

func newSessionStorage(cfg *config.Config) (session.Storage, error) {
	switch cfg.SessionStorageDriver {
	case config.SessionStorageFile:
		return file.New(cfg.SessionFilePath), nil
	case config.SessionStorageMemory:
		return inmem.New(), nil
	case config.SessionStoragePostgres:
		return postgres.New(cfg.PostgresDSN), nil
	default:
		return nil, fmt.Errorf("'%s' is not a known session storage driver", cfg.SessionStorageDriver)
	}
}
