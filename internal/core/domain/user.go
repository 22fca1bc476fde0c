package domain

import (
	"errors"
	"time"
)

// Role is the closed set of dealership roles.
type Role string

const (
	RoleSuperAdmin Role = "Super Admin"
	RoleAdmin      Role = "Admin"
	RoleManager    Role = "Manager"
	RoleSalesRep   Role = "Sales Rep"
	RoleFinance    Role = "Finance"
	RoleService    Role = "Service"
)

var allRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleManager, RoleSalesRep, RoleFinance, RoleService}

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// RoleAllowed reports whether role is contained in the allow-list.
func RoleAllowed(role Role, allowed ...Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
)

// User models an authenticated actor in the system.
// PasswordHash is excluded from every serialized representation.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TokenClaims is the identity carried by a verified access token.
type TokenClaims struct {
	UserID   string
	Username string
	Role     Role
}
