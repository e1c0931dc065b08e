// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService authenticates back-office accounts and manages session tokens.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	// Login checks the password before the account status, so an inactive
	// account is only revealed to someone who knows its password.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CurrentUser(ctx context.Context, userID string) (models.User, error)
	// BootstrapAdmin creates the configured administrator unless an account
	// with the same username or email already exists.
	BootstrapAdmin(ctx context.Context, admin config.BootstrapAdmin) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService implements account administration. The actor argument is the
// administrator performing the call.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateUser(ctx context.Context, actor models.User, update models.UserUpdate) (models.User, error)
	DeactivateUser(ctx context.Context, actor models.User, userID string) (models.User, error)
	GenerateResetToken(ctx context.Context, userID string) (models.ResetToken, error)
	SetPassword(ctx context.Context, userID string, req models.SetPasswordRequest) error
	ClearExpiredResetTokens(ctx context.Context) (int64, error)
}

// IDGenerator issues identifiers for new accounts.
type IDGenerator interface {
	Generate() string
}
