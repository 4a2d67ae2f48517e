package profile

import (
	"errors"
	"strings"
)

// Role constants.
const (
	RoleAdmin   = "admin"
	RoleCoach   = "coach"
	RoleParent  = "parent"
	RoleStudent = "student"
)

// Domain errors
var (
	ErrEmptyID    = errors.New("profile ID cannot be empty")
	ErrEmptyEmail = errors.New("profile email cannot be empty")
	ErrBadRole    = errors.New("role must be admin, coach, parent or student")
)

// Profile is the portal identity used for name resolution.
type Profile struct {
	ID          string
	DisplayName string
	Email       string
	Role        string
	Timezone    string // preferred viewing zone, may be empty
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	switch p.Role {
	case RoleAdmin, RoleCoach, RoleParent, RoleStudent:
	default:
		return ErrBadRole
	}
	return nil
}

// Name returns the display name, or the email when no name is set.
func (p *Profile) Name() string {
	if n := strings.TrimSpace(p.DisplayName); n != "" {
		return n
	}
	return p.Email
}
