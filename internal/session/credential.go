package session

import (
	"time"

	"github.com/dandigam/village-health-hub-sub001/internal/role"
)

// Subject identifies the operator a credential was issued to.
// A subject is immutable once issued and replaced wholesale on re-login.
type Subject struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     role.Role `json:"role"`
	Facility string    `json:"facility,omitempty"`
}

// Credential represents the token + subject + expiry triple of an authenticated session.
// It is owned exclusively by the Store and only ever created or destroyed through login and
// logout transitions.
type Credential struct {
	Token     string
	Subject   *Subject
	ExpiresAt time.Time
}

// Expired reports whether the credential's expiry instant has elapsed relative to now
func (credential *Credential) Expired(now time.Time) bool {
	return !credential.ExpiresAt.After(now)
}
