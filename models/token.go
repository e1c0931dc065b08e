// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var errEmptySubject = errors.New("empty subject claim")

// Token wraps a signed session JWT.
//
// The "sub" claim carries the user ID; role data is never trusted from the
// token and is reloaded from storage on every privileged request.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent as the bearer credential.
	SignedString string `json:"-"`

	// UserID caches the parsed subject claim.
	UserID string `json:"-"`
}

// GetUserID returns the user ID stored in the subject claim.
func (t *Token) GetUserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if userID == "" {
		return "", errEmptySubject
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
