package console

import (
	"errors"
	"net/http"
	"time"

	"github.com/dandigam/village-health-hub-sub001/internal/api/schema"
	"github.com/dandigam/village-health-hub-sub001/internal/api/validation"
	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

type loginPayload struct {
	UserName *string `json:"userName" required:"true"`
	Password *string `json:"password" required:"true"`
}

type sessionResponse struct {
	Subject   *session.Subject `json:"subject"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// EndpointLogin handles the 'POST /v1/auth/login' endpoint
func (service *Service) EndpointLogin(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := validation.UnmarshalBody[loginPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	credential, err := service.Sessions.Login(request.Context(), *payload.UserName, *payload.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidLogin) || errors.Is(err, session.ErrExpiredCredential) {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrInvalidLogin)
			return
		}
		service.writer.WriteInternalError(writer, err)
		return
	}

	// A login may change the effective role; cached read payloads must not outlive it
	if service.readCache != nil {
		service.readCache.Clear()
	}

	service.writer.WriteJSON(writer, &sessionResponse{
		Subject:   credential.Subject,
		ExpiresAt: credential.ExpiresAt,
	})
}

// EndpointLogout handles the 'POST /v1/auth/logout' endpoint
func (service *Service) EndpointLogout(writer http.ResponseWriter, request *http.Request) {
	if err := service.Sessions.Logout(request.Context()); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if service.readCache != nil {
		service.readCache.Clear()
	}
	writer.WriteHeader(http.StatusNoContent)
}

// EndpointMe handles the 'GET /v1/me' endpoint
func (service *Service) EndpointMe(writer http.ResponseWriter, request *http.Request) {
	subject, _ := request.Context().Value(contextValueSubject).(*session.Subject)
	service.writer.WriteJSON(writer, subject)
}
