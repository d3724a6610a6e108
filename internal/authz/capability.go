package authz

import (
	"github.com/dandigam/village-health-hub-sub001/internal/bitflag"
	"github.com/dandigam/village-health-hub-sub001/internal/role"
)

// Capability identifies a protected navigable surface of the console, independent of its route
type Capability string

const (
	CapabilityCamps         Capability = "camps"
	CapabilityPatients      Capability = "patients"
	CapabilityConsultations Capability = "consultations"
	CapabilityPharmacy      Capability = "pharmacy"
	CapabilityStock         Capability = "stock"
	CapabilityReports       Capability = "reports"
	CapabilityUsers         Capability = "users"
)

// Map assigns every capability the set of roles permitted to use it.
// It is loaded once at startup and never mutated at runtime.
type Map map[Capability]bitflag.Container

// Gate decides whether a role may use a capability.
// Decisions are pure functions of the capability map: a capability without an entry is denied to
// everyone, as is any role outside the closed role set.
type Gate struct {
	capabilities Map
}

// NewGate creates a new authorization gate working on the given capability map
func NewGate(capabilities Map) *Gate {
	return &Gate{
		capabilities: capabilities,
	}
}

// Allowed reports whether the given role may use the given capability
func (gate *Gate) Allowed(capability Capability, subjectRole role.Role) bool {
	allowed, ok := gate.capabilities[capability]
	if !ok {
		return false
	}
	flag := subjectRole.Flag()
	if flag == 0 {
		return false
	}
	return allowed.Has(flag)
}
