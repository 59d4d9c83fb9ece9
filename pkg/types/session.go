package types

import (
	"slices"
	"time"
)

// Role is the kind of user behind a session.
type Role string

// Known roles.
const (
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

// Session is the login identity threaded through every call. The zero
// value is the LoggedOut state.
type Session struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	PermittedIDs []int64   `json:"permitted_ids,omitempty"`
	LoggedInAt   time.Time `json:"logged_in_at"`
}

// LoggedIn reports whether s is in the LoggedIn state.
func (s Session) LoggedIn() bool {
	return s.Role != ""
}

// Permits reports whether s may see rows belonging to childID. Teachers see
// everything; parents see only their permitted ids.
func (s Session) Permits(childID int64) bool {
	switch s.Role {
	case RoleTeacher:
		return true
	case RoleParent:
		return slices.Contains(s.PermittedIDs, childID)
	default:
		return false
	}
}
