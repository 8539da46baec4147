package auth

// Package auth contains domain-level types for identity, roles, and the
// client session. It is pure and free of transport/adapter concerns.

import "strings"

// Role represents an application authorization role.
// Keep string form for easy persistence and wire payloads.
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleRecruiter, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if role.Valid() {
		return role, true
	}
	return "", false
}

// Identity represents the authenticated principal returned by the gateway.
// Owned exclusively by the session; immutable once set except by a fresh login.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  Role   `json:"user_type"`
}

// Profile is role-specific extension data. Only the fields for the owning
// role are populated; it is never required for navigation decisions.
type Profile struct {
	// Student fields
	StudentID   string `json:"student_id,omitempty"`
	University  string `json:"university,omitempty"`
	Course      string `json:"course,omitempty"`
	YearOfStudy int    `json:"year_of_study,omitempty"`

	// Recruiter fields
	CompanyName    string `json:"company_name,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
	Position       string `json:"position,omitempty"`
	CompanySize    string `json:"company_size,omitempty"`
	Industry       string `json:"industry,omitempty"`

	PhoneNumber string `json:"phone_number,omitempty"`
}

// Session is the authenticated state of the portal client.
// Invariant: Role is non-empty exactly when User is non-nil.
type Session struct {
	Role    Role      `json:"role,omitempty"`
	User    *Identity `json:"user,omitempty"`
	Profile *Profile  `json:"profile,omitempty"`
}

// Authenticated reports whether a user is logged in.
func (s Session) Authenticated() bool { return s.User != nil }
