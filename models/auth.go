// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LoginRequest is the body of POST /api/auth/login.
// Identifier matches either the username or the email of an account.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is a partial update of a user record.
// Only non-nil fields are applied.
type UserUpdate struct {
	// ID is the account to update. Taken from the URL, not the body.
	ID string `json:"-"`

	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Empty reports whether the update carries no changes.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Role == nil && u.IsAdmin == nil && u.IsActive == nil
}

// ResetToken is a freshly generated one-time password reset token.
// It is returned exactly once, by the generating request.
type ResetToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SetPasswordRequest is the body of PUT /api/users/{id}/password.
type SetPasswordRequest struct {
	Password string `json:"password"`
}

// PasswordChange is the operator's input for replacing another account's
// password. Confirm never leaves the client.
type PasswordChange struct {
	Password string
	Confirm  string
}
