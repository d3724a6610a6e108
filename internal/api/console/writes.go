package console

import (
	"net/http"

	"github.com/dandigam/village-health-hub-sub001/internal/api/schema"
	"github.com/dandigam/village-health-hub-sub001/internal/api/validation"
	"github.com/dandigam/village-health-hub-sub001/internal/fetch"
)

type createPatientPayload struct {
	Name   *string `json:"name" required:"true"`
	Age    *int    `json:"age" required:"true" min:"0" max:"130"`
	Gender *string `json:"gender"`
	CampID *string `json:"camp_id" required:"true"`
}

// EndpointCreatePatient handles the 'POST /v1/patients' endpoint
func (service *Service) EndpointCreatePatient(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := validation.UnmarshalBody[createPatientPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	created, err := fetch.Mutate[Patient](request.Context(), service.Mutator, "/patients", http.MethodPost, payload)
	if err != nil || created == nil {
		service.writer.WriteErrors(writer, http.StatusBadGateway, schema.ErrNotPersisted)
		return
	}

	if service.readCache != nil {
		service.readCache.Unset("/patients")
	}
	service.writer.WriteJSONCode(writer, http.StatusCreated, created)
}

type dispatchStockPayload struct {
	ItemID   *string `json:"item_id" required:"true"`
	CampID   *string `json:"camp_id" required:"true"`
	Quantity *int    `json:"quantity" required:"true" min:"1"`
}

// EndpointDispatchStock handles the 'POST /v1/inventory/dispatch' endpoint
func (service *Service) EndpointDispatchStock(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := validation.UnmarshalBody[dispatchStockPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	dispatched, err := fetch.Mutate[StockItem](request.Context(), service.Mutator, "/stock/dispatch", http.MethodPost, payload)
	if err != nil || dispatched == nil {
		service.writer.WriteErrors(writer, http.StatusBadGateway, schema.ErrNotPersisted)
		return
	}

	if service.readCache != nil {
		service.readCache.Unset("/stock")
	}
	service.writer.WriteJSON(writer, dispatched)
}
