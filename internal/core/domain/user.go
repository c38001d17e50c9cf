package domain

import (
	"errors"
	"time"
)

// Roles carried by a principal. The platform serves four public user
// categories plus a staff admin role.
const (
	RoleAdmin        = "admin"
	RoleResident     = "resident"
	RoleDeveloper    = "developer"
	RoleProfessional = "professional"
	RoleAuthority    = "authority"
)

// User types partition the dashboard surface. They are always derived from
// the role via RoleToUserType, never assigned independently.
const (
	UserTypeAuthorities   = "authorities"
	UserTypeResidents     = "residents"
	UserTypeDevelopers    = "developers"
	UserTypeProfessionals = "professionals"
	// UserTypeAdmin is produced only by the email-heuristic sign-in path;
	// the mapper itself folds admin into authorities.
	UserTypeAdmin = "admin"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoUserLoggedIn     = errors.New("no user logged in")
	ErrOperationInFlight  = errors.New("operation already in flight")
)

// Principal models an authenticated actor: a resident, developer,
// professional, authority representative, or platform admin.
type Principal struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	UserType     string    `json:"user_type,omitempty"`
	FullName     string    `json:"full_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	IDNumber     string    `json:"id_number,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// RoleToUserType maps a role to the user type that partitions the dashboard
// routes. Total and side-effect free: unknown values are echoed unchanged.
func RoleToUserType(role string) string {
	switch role {
	case RoleAdmin:
		return UserTypeAuthorities
	case RoleAuthority, UserTypeAuthorities:
		return UserTypeAuthorities
	case RoleResident:
		return UserTypeResidents
	case RoleDeveloper:
		return UserTypeDevelopers
	case RoleProfessional:
		return UserTypeProfessionals
	default:
		return role
	}
}
