package employee

import (
	"fmt"
	"time"
)

// Role decides which overviews an employee may request for others.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

// ParseRole parses a role string. Unknown values fail explicitly.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

type Employee struct {
	ID       string
	FullName string
	Email    string
	Role     Role

	// DefaultOverviewQuery is the overview query string the employee chose
	// as their landing default, if any.
	DefaultOverviewQuery *string

	CreatedAt time.Time
}

// IsAdmin reports whether the employee may request other employees' data.
func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
