package authz

import "github.com/dandigam/village-health-hub-sub001/internal/role"

// Defaults returns the static capability map of the camp console.
// New protected surfaces have to be registered here; unregistered ones are unreachable.
func Defaults() Map {
	return Map{
		CapabilityCamps:         role.Set(role.Admin, role.Doctor, role.Nurse, role.Pharmacist, role.Warehouse),
		CapabilityPatients:      role.Set(role.Admin, role.Doctor, role.Nurse),
		CapabilityConsultations: role.Set(role.Admin, role.Doctor),
		CapabilityPharmacy:      role.Set(role.Admin, role.Pharmacist),
		CapabilityStock:         role.Set(role.Warehouse, role.Admin),
		CapabilityReports:       role.Set(role.Admin),
		CapabilityUsers:         role.Set(role.Admin),
	}
}
