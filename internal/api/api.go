package api

import (
	"errors"
	"net/http"

	"github.com/dandigam/village-health-hub-sub001/internal/api/console"
	"github.com/dandigam/village-health-hub-sub001/internal/authz"
	"github.com/dandigam/village-health-hub-sub001/internal/config"
	"github.com/dandigam/village-health-hub-sub001/internal/fetch"
	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

// Service represents the console API service
type Service struct {
	Config   *config.Config
	Sessions *session.Store
	Gate     *authz.Gate
	Resolver *fetch.Resolver
	Mutator  *fetch.Mutator

	console *console.Service
}

// Startup starts up the console API
func (service *Service) Startup(errs chan<- error) {
	consoleService := &console.Service{
		Config:   service.Config,
		Sessions: service.Sessions,
		Gate:     service.Gate,
		Resolver: service.Resolver,
		Mutator:  service.Mutator,
	}
	service.console = consoleService
	go func() {
		if err := consoleService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the console API
func (service *Service) Shutdown() {
	if service.console != nil {
		service.console.Shutdown()
		service.console = nil
	}
}
