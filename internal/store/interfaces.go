// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/pos-backoffice/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists back-office accounts and their reset-token state.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByIdentifier matches the identifier against username or email.
	FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
	// SetResetToken stores a reset token, replacing any outstanding one.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	// SetPassword replaces the password hash and clears any reset token.
	SetPassword(ctx context.Context, userID, passwordHash string) error
	// ClearExpiredResetTokens removes reset tokens that expired before now.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
