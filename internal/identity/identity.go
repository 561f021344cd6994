// Package identity resolves the authenticated caller for each request and
// carries it through the request context.
package identity

import "fmt"

// Role is the caller's origination role.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleLoanOfficer Role = "loan_officer"
	RoleFieldAgent  Role = "field_agent"
	RoleViewer      Role = "viewer"
)

// ParseRole validates and converts a string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleLoanOfficer, RoleFieldAgent, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Caller is the resolved identity attached to a request.
type Caller struct {
	Subject string
	Name    string
	Role    Role
	BankID  string
}
