package role

import "github.com/dandigam/village-health-hub-sub001/internal/bitflag"

// Role represents a single operator role of the camp console.
// The set of roles is closed; a subject carries exactly one of them.
type Role string

const (
	Admin      Role = "ADMIN"
	Doctor     Role = "DOCTOR"
	Nurse      Role = "NURSE"
	Pharmacist Role = "PHARMACIST"
	Warehouse  Role = "WARE_HOUSE"
)

const (
	flagAdmin bitflag.Flag = 1 << iota
	flagDoctor
	flagNurse
	flagPharmacist
	flagWarehouse
)

var flags = map[Role]bitflag.Flag{
	Admin:      flagAdmin,
	Doctor:     flagDoctor,
	Nurse:      flagNurse,
	Pharmacist: flagPharmacist,
	Warehouse:  flagWarehouse,
}

// Valid reports whether the role is part of the closed role set
func (cur Role) Valid() bool {
	_, ok := flags[cur]
	return ok
}

// Flag returns the bitflag assigned to the role.
// Unknown roles map to the zero flag which is never part of any container.
func (cur Role) Flag() bitflag.Flag {
	return flags[cur]
}

// Set builds a bitflag container out of the given roles
func Set(roles ...Role) bitflag.Container {
	container := bitflag.EmptyContainer
	for _, cur := range roles {
		container = container.With(cur.Flag())
	}
	return container
}
