package auth

// Role is a practitioner role carried in the JWT.
type Role string

const (
	RoleGP    Role = "gp"
	RoleNurse Role = "nurse"
	RoleAdmin Role = "admin"
)

// Permission represents a specific action on a resource.
type Permission string

const (
	PermSessionCreate  Permission = "session.create"
	PermSessionRead    Permission = "session.read"
	PermSessionUpdate  Permission = "session.update"
	PermSessionClear   Permission = "session.clear"
	PermDocumentExport Permission = "document.export"
	PermAuditRead      Permission = "audit.read"
)

// rolePermissions maps each role to what it may do. Nurses run the
// assessments but a GP signs off the final document, so export stays
// with GP and admin.
var rolePermissions = map[Role]map[Permission]bool{
	RoleGP: {
		PermSessionCreate:  true,
		PermSessionRead:    true,
		PermSessionUpdate:  true,
		PermSessionClear:   true,
		PermDocumentExport: true,
		PermAuditRead:      true,
	},
	RoleNurse: {
		PermSessionCreate: true,
		PermSessionRead:   true,
		PermSessionUpdate: true,
	},
	RoleAdmin: {
		PermSessionCreate:  true,
		PermSessionRead:    true,
		PermSessionUpdate:  true,
		PermSessionClear:   true,
		PermDocumentExport: true,
		PermAuditRead:      true,
	},
}

// Can reports whether the user's role grants the permission
func (u *User) Can(perm Permission) bool {
	if u == nil {
		return false
	}
	return rolePermissions[Role(u.Role)][perm]
}
