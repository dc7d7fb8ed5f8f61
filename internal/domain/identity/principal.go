package identity

import "github.com/google/uuid"

// Principal is the authenticated caller attached to a request.
// It carries only what authorization decisions need.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin returns true for admin principals
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsCustomer returns true for customer principals
func (p Principal) IsCustomer() bool {
	return p.Role == RoleCustomer
}

// IsRider returns true for rider principals
func (p Principal) IsRider() bool {
	return p.Role == RoleRider
}
