package console

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/dandigam/village-health-hub-sub001/internal/api/schema"
	"github.com/dandigam/village-health-hub-sub001/internal/api/validation"
	"github.com/dandigam/village-health-hub-sub001/internal/fetch"
)

// provenanceHeader tells consumers whether a read response carries live backend data
const provenanceHeader = "X-Provenance"

// EndpointGetCamps handles the 'GET /v1/camps?offset={number?:0}&limit={number?:10}' endpoint
func (service *Service) EndpointGetCamps(writer http.ResponseWriter, request *http.Request) {
	serveList(service, writer, request, "/camps", fallbackCamps)
}

// EndpointGetPatients handles the 'GET /v1/patients?offset={number?:0}&limit={number?:10}' endpoint
func (service *Service) EndpointGetPatients(writer http.ResponseWriter, request *http.Request) {
	serveList(service, writer, request, "/patients", fallbackPatients)
}

// EndpointGetInventory handles the 'GET /v1/inventory?offset={number?:0}&limit={number?:10}' endpoint
func (service *Service) EndpointGetInventory(writer http.ResponseWriter, request *http.Request) {
	serveList(service, writer, request, "/stock", fallbackStock)
}

// serveList answers a paginated read endpoint out of the read cache, the live backend or the
// fallback dataset, in that order
func serveList[T any](service *Service, writer http.ResponseWriter, request *http.Request, endpoint string, fallback []T) {
	var validationErrs []*schema.Error

	offset, validationErr := validation.QueryNumber(request, "offset", false, 0, 0, math.MaxInt64)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	limit, validationErr := validation.QueryNumber(request, "limit", false, 10, 1, 1000)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	items, provenance := resolveList(service, request, endpoint, fallback)

	page := paginate(items, offset, limit)
	writer.Header().Set(provenanceHeader, string(provenance))
	service.writer.WriteJSON(writer, schema.BuildPaginatedResponse(uint64(offset), uint64(limit), uint64(len(items)), page))
}

func resolveList[T any](service *Service, request *http.Request, endpoint string, fallback []T) ([]T, fetch.Provenance) {
	if service.readCache != nil {
		if raw, ok := service.readCache.Lookup(endpoint); ok {
			var cached []T
			if err := json.Unmarshal(raw, &cached); err == nil && len(cached) > 0 {
				return cached, fetch.ProvenanceLive
			}
		}
	}

	result := fetch.Resolve(request.Context(), service.Resolver, endpoint, fallback)
	if result.Provenance == fetch.ProvenanceLive && service.readCache != nil {
		if raw, err := json.Marshal(result.Data); err == nil {
			service.readCache.Set(endpoint, raw)
		}
	}
	return result.Data, result.Provenance
}

func paginate[T any](items []T, offset, limit int64) []T {
	if offset >= int64(len(items)) {
		return []T{}
	}
	end := offset + limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[offset:end]
}
