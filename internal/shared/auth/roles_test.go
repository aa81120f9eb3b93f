package auth

import "testing"

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role string
		perm Permission
		want bool
	}{
		{"gp", PermSessionCreate, true},
		{"gp", PermDocumentExport, true},
		{"gp", PermAuditRead, true},
		{"nurse", PermSessionCreate, true},
		{"nurse", PermSessionUpdate, true},
		{"nurse", PermDocumentExport, false},
		{"nurse", PermSessionClear, false},
		{"nurse", PermAuditRead, false},
		{"admin", PermSessionClear, true},
		{"receptionist", PermSessionRead, false},
	}

	for _, tt := range tests {
		user := &User{Role: tt.role}
		if got := user.Can(tt.perm); got != tt.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestNilUserCannot(t *testing.T) {
	var user *User
	if user.Can(PermSessionRead) {
		t.Error("nil user should have no permissions")
	}
}
