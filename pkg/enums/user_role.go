package enums

import "fmt"

// UserRole identifies which side of the delivery network an account belongs to.
type UserRole string

const (
	UserRoleStore   UserRole = "store"
	UserRoleFootman UserRole = "footman"
	UserRoleRider   UserRole = "rider"
)

var validUserRoles = []UserRole{
	UserRoleStore,
	UserRoleFootman,
	UserRoleRider,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAgent reports whether the role carries task counters and earnings.
func (r UserRole) IsAgent() bool {
	return r == UserRoleFootman || r == UserRoleRider
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
