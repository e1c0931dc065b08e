// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"

	"github.com/MKhiriev/pos-backoffice/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey holds the authenticated user ID taken from the bearer token.
	UserIDCtxKey = contextKey("userID")

	// UserCtxKey holds the caller's user record once it was loaded from storage.
	UserCtxKey = contextKey("user")
)

// GetUserIDFromContext returns the authenticated user ID stored by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetUserFromContext returns the caller's user record stored by the admin middleware.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}
