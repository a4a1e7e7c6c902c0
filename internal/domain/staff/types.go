package staff

// Role controls what a staff member may do within a tenant. Staff records
// themselves are managed outside the booking engine; the engine only needs
// the role carried by an access token.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleCaregiver Role = "caregiver"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCaregiver:
		return true
	default:
		return false
	}
}
