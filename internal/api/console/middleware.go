package console

import (
	"context"
	"errors"
	"net/http"

	"github.com/dandigam/village-health-hub-sub001/internal/api/schema"
	"github.com/dandigam/village-health-hub-sub001/internal/authz"
	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

var contextValueSubject = "subject"

// MiddlewareVerifySession makes sure that an authenticated session exists.
// Additionally, it injects the session's subject into the request context.
// Requests without a session end here with a 401; this is a different terminal state than a
// failed capability check and the two must not be conflated.
func (service *Service) MiddlewareVerifySession(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		subject := service.Sessions.Subject()
		if subject == nil {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		request = request.WithContext(context.WithValue(request.Context(), contextValueSubject, subject))
		next(writer, request)
	}
}

// MiddlewareRequireCapability makes sure that the subject's role may use the given capability.
// Authenticated but unauthorized requests end here with a 403.
func (service *Service) MiddlewareRequireCapability(capability authz.Capability) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) {
			subject, ok := request.Context().Value(contextValueSubject).(*session.Subject)
			if !ok {
				service.writer.WriteInternalError(writer, errors.New("capability check without session verification"))
				return
			}

			if !service.Gate.Allowed(capability, subject.Role) {
				service.writer.WriteErrors(writer, http.StatusForbidden, schema.ErrForbidden)
				return
			}
			next(writer, request)
		}
	}
}
