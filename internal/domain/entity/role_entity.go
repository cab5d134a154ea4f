package entity

import "time"

// Role is the closed set of role labels an admin profile can carry.
// The zero value is RoleAbsent so an unset role never grants anything.
type Role int

const (
	RoleAbsent Role = iota
	RoleAdmin
	RoleEditor
	RoleUnknown
)

// ParseRole maps a stored label onto Role. Labels are compared byte for
// byte: only "admin" yields RoleAdmin, an empty label is absent and
// anything else, padded variants included, is unknown.
func ParseRole(label string) Role {
	switch label {
	case "":
		return RoleAbsent
	case "admin":
		return RoleAdmin
	case "editor":
		return RoleEditor
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEditor:
		return "editor"
	case RoleUnknown:
		return "unknown"
	default:
		return "absent"
	}
}

// AdminProfile is the single role record held for a subject.
type AdminProfile struct {
	SubjectID string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
