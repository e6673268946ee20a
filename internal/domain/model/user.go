//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import "time"

// User is a storefront account as listed by the admin API.
type User struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	IsStaff    bool       `json:"is_staff"`
	IsActive   bool       `json:"is_active"`
	DateJoined *time.Time `json:"date_joined,omitempty"`
}

// UserRequest creates or updates a user. Password is sent on create,
// NewPassword on update and only when non-empty.
type UserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
	IsStaff     bool   `json:"is_staff"`
	IsActive    bool   `json:"is_active"`
}
