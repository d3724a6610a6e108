package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dandigam/village-health-hub-sub001/internal/transport"
)

// loginEndpoint is the credential exchange endpoint of the camp backend
const loginEndpoint = "/auth/login"

// BackendAuthenticator implements the Authenticator interface using the camp backend's login
// endpoint. Any non-2xx response counts as a login failure.
type BackendAuthenticator struct {
	client *transport.Client
}

var _ Authenticator = (*BackendAuthenticator)(nil)

// The store feeds the bearer token of the current session back into the transport layer
var _ transport.TokenSource = (*Store)(nil)

// NewBackendAuthenticator creates a new authenticator on top of the given backend client
func NewBackendAuthenticator(client *transport.Client) *BackendAuthenticator {
	return &BackendAuthenticator{
		client: client,
	}
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *Subject  `json:"user"`
}

// Authenticate exchanges the given login credentials for a session credential
func (auth *BackendAuthenticator) Authenticate(ctx context.Context, username, password string) (*Credential, error) {
	payload, err := auth.client.Do(ctx, &transport.Request{
		Endpoint: loginEndpoint,
		Method:   http.MethodPost,
		Body: loginRequest{
			UserName: username,
			Password: password,
		},
	})
	if err != nil {
		return nil, err
	}

	response := new(loginResponse)
	if err := json.Unmarshal(payload, response); err != nil {
		return nil, err
	}
	if response.Token == "" || response.User == nil || response.ExpiresAt.IsZero() {
		return nil, errors.New("login response is missing its token, user or expiry")
	}
	if !response.User.Role.Valid() {
		return nil, errors.New("login response carries an unknown role")
	}

	return &Credential{
		Token:     response.Token,
		Subject:   response.User,
		ExpiresAt: response.ExpiresAt,
	}, nil
}
