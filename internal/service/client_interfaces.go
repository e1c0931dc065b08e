// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/policy"
	"github.com/MKhiriev/pos-backoffice/models"
)

// ClientUserService is the operator's view of user administration. Every
// call needs an authenticated session.
type ClientUserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)

	// UpdateUser applies edit to the loaded record. Role fields are
	// reconciled before sending so role and is_admin never disagree in
	// the request.
	UpdateUser(ctx context.Context, loaded models.User, edit UserEdit) (UserUpdateResult, error)

	// Deactivate disables another account. Deactivating the signed-in
	// account fails with [ErrSelfDeactivation] before any request is sent.
	Deactivate(ctx context.Context, userID string) (models.User, error)
}

// ClientRecoveryService drives the administrator side of credential
// recovery.
type ClientRecoveryService interface {
	// GenerateResetToken issues one reset token per call. Failures are
	// never retried.
	GenerateResetToken(ctx context.Context, userID string) (ResetTokenResult, error)

	// ChangePassword replaces another account's password once the new
	// secret passes local validation.
	ChangePassword(ctx context.Context, userID string, change models.PasswordChange) error
}

// UserEdit is the state of the user edit form. Nil fields are unchanged.
type UserEdit struct {
	Username *string
	Email    *string
	IsActive *bool

	Roles policy.RoleEdit
}

// UserUpdateResult is a saved user together with the role advisory of the
// record as it was loaded.
type UserUpdateResult struct {
	User     models.User
	Advisory string
}

// ResetTokenResult is a generated reset token ready for display.
type ResetTokenResult struct {
	Token     string
	ExpiresAt time.Time
	Warning   string
}
