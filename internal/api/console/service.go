package console

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/dandigam/village-health-hub-sub001/internal/api/schema"
	"github.com/dandigam/village-health-hub-sub001/internal/authz"
	"github.com/dandigam/village-health-hub-sub001/internal/config"
	"github.com/dandigam/village-health-hub-sub001/internal/fetch"
	"github.com/dandigam/village-health-hub-sub001/internal/function"
	"github.com/dandigam/village-health-hub-sub001/internal/hashmap"
	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

// Service represents the console API service.
// It is the consuming surface of the data-access and session core: every read goes through the
// fallback resolver, every write through the mutation gateway and every protected route through
// the session and capability middlewares.
type Service struct {
	server *http.Server

	Config *config.Config

	Sessions *session.Store
	Gate     *authz.Gate
	Resolver *fetch.Resolver
	Mutator  *fetch.Mutator

	writer *schema.Writer

	// readCache keeps recently served live payloads per endpoint. Staleness is tolerated for
	// reads; fallback data is never cached.
	readCache *hashmap.ExpiringMap[string, json.RawMessage]
}

// Startup starts up the console API
func (service *Service) Startup() error {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the console API experienced an unexpected error")
		},
	}

	// Create the read-through response cache
	if service.Config.ReadCacheTTL > 0 {
		service.readCache = hashmap.NewExpiring[string, json.RawMessage](service.Config.ReadCacheTTL)
		service.readCache.ScheduleCleanupTask(service.Config.ReadCacheTTL)
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.ConsoleAllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the session endpoints
	router.Post("/v1/auth/login", service.EndpointLogin)
	router.Post("/v1/auth/logout", function.Nest[http.HandlerFunc](service.EndpointLogout, service.MiddlewareVerifySession))
	router.Get("/v1/me", function.Nest[http.HandlerFunc](service.EndpointMe, service.MiddlewareVerifySession))

	// Register the capability-gated read endpoints
	router.Get("/v1/camps", function.Nest[http.HandlerFunc](service.EndpointGetCamps,
		service.MiddlewareVerifySession, service.MiddlewareRequireCapability(authz.CapabilityCamps)))
	router.Get("/v1/patients", function.Nest[http.HandlerFunc](service.EndpointGetPatients,
		service.MiddlewareVerifySession, service.MiddlewareRequireCapability(authz.CapabilityPatients)))
	router.Get("/v1/inventory", function.Nest[http.HandlerFunc](service.EndpointGetInventory,
		service.MiddlewareVerifySession, service.MiddlewareRequireCapability(authz.CapabilityStock)))

	// Register the capability-gated write endpoints
	router.Post("/v1/patients", function.Nest[http.HandlerFunc](service.EndpointCreatePatient,
		service.MiddlewareVerifySession, service.MiddlewareRequireCapability(authz.CapabilityPatients)))
	router.Post("/v1/inventory/dispatch", function.Nest[http.HandlerFunc](service.EndpointDispatchStock,
		service.MiddlewareVerifySession, service.MiddlewareRequireCapability(authz.CapabilityStock)))

	// Start up the server
	server := &http.Server{
		Addr:    service.Config.ConsoleListenAddress,
		Handler: router,
	}
	service.server = server
	return server.ListenAndServe()
}

// Shutdown shuts down the console API
func (service *Service) Shutdown() {
	if service.readCache != nil {
		service.readCache.StopCleanupTask()
		service.readCache = nil
	}
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}
