package auth

// Package auth contains domain-level types for the admin session.
// It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"strings"
	"time"
)

// Persisted storage keys. They are always written and cleared together.
const (
	TokenKey = "admin_token"
	UserKey  = "admin_user"
)

// PrivilegeDenied is the message shown when a non-staff principal logs in.
const PrivilegeDenied = "You do not have admin privileges."

// StorageKeys lists both persisted keys in a stable order.
func StorageKeys() []string { return []string{TokenKey, UserKey} }

// Identity is the principal record returned by the backend on login and
// persisted under UserKey. ID accepts a JSON number or a numeric string.
type Identity struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name,omitempty"`
	Email      string      `json:"email,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	IsStaff    bool        `json:"is_staff"`
	IsActive   bool        `json:"is_active,omitempty"`
	DateJoined *time.Time  `json:"date_joined,omitempty"`
}

// DisplayName returns the name, falling back to the email.
func (i Identity) DisplayName() string {
	if n := strings.TrimSpace(i.Name); n != "" {
		return n
	}
	return i.Email
}

// Initial returns the upper-cased first letter of the display name.
func (i Identity) Initial() string {
	n := i.DisplayName()
	for _, r := range n {
		return strings.ToUpper(string(r))
	}
	return "A"
}

// Credentials are what the login form submits.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credential is a login result: a bearer token and the principal it speaks for.
// It is valid only when Identity.IsStaff is true.
type Credential struct {
	Token    string   `json:"token"`
	Identity Identity `json:"user"`
}

// Valid reports whether the credential may be persisted.
func (c Credential) Valid() bool {
	return c.Token != "" && c.Identity.IsStaff
}

// State is the lifecycle state of a session.
type State int

const (
	// StateRestoring is the initial state before persisted storage was consulted.
	StateRestoring State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ForcedLogout describes a session torn down because the backend answered 401.
// Redirect is false when the browser is already on the login surface.
type ForcedLogout struct {
	Location string
	Redirect bool
}
