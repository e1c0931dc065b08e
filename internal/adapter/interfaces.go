// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's transport to the back-office API.
//
// Failed responses are returned as the sentinel errors in errors.go wrapped
// with the server's response text, so callers can both match with
// [errors.Is] and show the message through [ResponseText].
package adapter

import (
	"context"

	"github.com/MKhiriev/pos-backoffice/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the back-office API on behalf of the client.
type ServerAdapter interface {
	// SetToken sets the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the current bearer token or "".
	Token() string

	// ClearToken drops the bearer token.
	ClearToken()

	// OnUnauthorized registers fn to run whenever an authenticated request
	// is answered with 401. Only the last registered fn is kept.
	OnUnauthorized(fn func())

	// Login authenticates with the server. It returns the account and the
	// bearer token without storing the token; the caller decides whether
	// the session accepts it.
	Login(ctx context.Context, req models.LoginRequest) (models.User, string, error)

	// Register creates an account. It never returns a token.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Me resolves token to its account. It does not use or change the
	// stored token.
	Me(ctx context.Context, token string) (models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
	DeactivateUser(ctx context.Context, userID string) (models.User, error)

	// GenerateResetToken asks the server for a fresh reset token. It is
	// never retried.
	GenerateResetToken(ctx context.Context, userID string) (models.ResetToken, error)

	// SetPassword replaces the password of another account.
	SetPassword(ctx context.Context, userID string, req models.SetPasswordRequest) error
}
