package domain

// Role identifies the class of actor interacting with the portal.
// The set is closed; anything else is rejected at the boundary.
type Role string

const (
	// RoleStudent submits and withdraws applications.
	RoleStudent Role = "student"
	// RoleInstitute reviews applications for courses it owns.
	RoleInstitute Role = "institute"
	// RoleCompany owns job postings and hiring stats.
	RoleCompany Role = "company"
	// RoleAdmin has institution-level review powers plus system-wide dashboards.
	RoleAdmin Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleStudent, RoleInstitute, RoleCompany, RoleAdmin} //nolint: gochecknoglobals

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstitute, RoleCompany, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanReview reports whether the role may move applications through the
// admission review states. Students may only withdraw their own records.
func (r Role) CanReview() bool {
	return r == RoleInstitute || r == RoleAdmin
}
