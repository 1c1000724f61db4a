package enums

import (
	"fmt"
	"strings"
)

// UserRole is the account-level role carried in access tokens.
type UserRole string

const (
	UserRoleCustomer       UserRole = "customer"
	UserRoleProductManager UserRole = "product_manager"
	UserRoleSalesManager   UserRole = "sales_manager"
	UserRoleSupportAgent   UserRole = "support_agent"
)

var validUserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleProductManager,
	UserRoleSalesManager,
	UserRoleSupportAgent,
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to store personnel.
func (r UserRole) IsStaff() bool {
	return r.IsValid() && r != UserRoleCustomer
}

// ParseUserRole converts raw input into a UserRole, ignoring case and surrounding space.
func ParseUserRole(value string) (UserRole, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validUserRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
