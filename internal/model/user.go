package model

import "fmt"

// Role is a user's authorization role. Only the constants below are valid.
type Role string

// Roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole converts a raw role string into a Role, failing for anything
// outside the known set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleUser:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User is an account as returned by the API.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserRef is the short user form embedded in items, comments and claims.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Session is the client's authentication state. Build it with NewSession so
// that IsAuthenticated always matches Token and User.
type Session struct {
	Token           string `json:"token,omitempty"`
	User            *User  `json:"user,omitempty"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// NewSession returns a session for the given token and user. The session is
// authenticated only when both are present.
func NewSession(token string, user *User) Session {
	return Session{
		Token:           token,
		User:            user,
		IsAuthenticated: token != "" && user != nil,
	}
}

// Role returns the session user's role, or "" when there is no user.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
