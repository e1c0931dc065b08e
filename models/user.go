// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the coarse authorization tier of a back-office account.
type Role string

const (
	// RoleUser is the default tier assigned on self-registration.
	RoleUser Role = "user"
	// RoleAdmin grants access to user administration endpoints.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// RoleFor returns the role matching the given admin flag.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User is a back-office operator account.
//
// Role and IsAdmin describe the same fact twice and must agree:
// Role == RoleAdmin exactly when IsAdmin is true.
// Credential fields never leave the server in serialized form.
type User struct {
	// ID is the account identifier (UUID string).
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the unique contact address; it is also accepted as a login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account secret.
	PasswordHash string `json:"-"`

	// Role is the authorization tier.
	Role Role `json:"role"`

	// IsAdmin mirrors Role for consumers that only check a flag.
	IsAdmin bool `json:"is_admin"`

	// IsActive is false once an administrator deactivated the account.
	IsActive bool `json:"is_active"`

	// ResetPasswordToken is the outstanding one-time reset token, if any.
	ResetPasswordToken *string `json:"-"`

	// ResetPasswordExpires is the expiry of ResetPasswordToken.
	ResetPasswordExpires *time.Time `json:"-"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RolesConsistent reports whether Role and IsAdmin agree.
func (u User) RolesConsistent() bool {
	return (u.Role == RoleAdmin) == u.IsAdmin
}

// CanAdminister reports whether the account may use admin endpoints.
func (u User) CanAdminister() bool {
	return u.IsActive && u.Role == RoleAdmin
}
