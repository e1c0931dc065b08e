// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func rolePtr(r models.Role) *models.Role { return &r }

func TestValidate_Dispatch(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("login value and pointer", func(t *testing.T) {
		req := models.LoginRequest{Identifier: "alice", Password: "x"}
		require.NoError(t, v.Validate(ctx, req))
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("set password", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, models.SetPasswordRequest{Password: "12345"}), ErrPasswordTooShort)
		require.NoError(t, v.Validate(ctx, &models.SetPasswordRequest{Password: "123456"}))
	})

	t.Run("unknown field", func(t *testing.T) {
		err := v.Validate(ctx, models.LoginRequest{Identifier: "a", Password: "b"}, "nope")
		require.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"empty", "", ErrEmptyPassword},
		{"five chars", "abcde", ErrPasswordTooShort},
		{"six chars", "abcdef", nil},
		{"multibyte counted as runes", "пароль", nil},
		{"multibyte too short", "пар", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Login(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Identifier: "  ", Password: "x"}), ErrEmptyIdentifier)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Identifier: "alice"}), ErrEmptyPassword)
	// short secrets are still sent to the server on login
	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Identifier: "alice", Password: "abc"}))
}

func TestValidate_Register(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	valid := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{"valid", func(r *models.RegisterRequest) {}, nil},
		{"empty username", func(r *models.RegisterRequest) { r.Username = "" }, ErrInvalidUsername},
		{"username with space", func(r *models.RegisterRequest) { r.Username = "al ice" }, ErrInvalidUsername},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"email with display name", func(r *models.RegisterRequest) { r.Email = "Alice <alice@example.com>" }, ErrInvalidEmail},
		{"short password", func(r *models.RegisterRequest) { r.Password = "123" }, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := v.Validate(ctx, req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_UserUpdate(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("missing id", func(t *testing.T) {
		err := v.Validate(ctx, models.UserUpdate{Username: strPtr("bob")})
		assert.ErrorIs(t, err, ErrEmptyUserID)
	})

	t.Run("no changes", func(t *testing.T) {
		err := v.Validate(ctx, models.UserUpdate{ID: "u1"})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("unknown role", func(t *testing.T) {
		err := v.Validate(ctx, models.UserUpdate{ID: "u1", Role: rolePtr("owner")})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("bad email", func(t *testing.T) {
		err := v.Validate(ctx, &models.UserUpdate{ID: "u1", Email: strPtr("x")})
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("valid", func(t *testing.T) {
		err := v.Validate(ctx, models.UserUpdate{ID: "u1", Role: rolePtr(models.RoleAdmin)})
		assert.NoError(t, err)
	})
}

func TestValidate_PasswordChange(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.PasswordChange{Password: "abc", Confirm: "abc"}), ErrPasswordTooShort)
	assert.ErrorIs(t, v.Validate(ctx, models.PasswordChange{Password: "abcdef", Confirm: "abcdeg"}), ErrPasswordsDontMatch)
	assert.NoError(t, v.Validate(ctx, &models.PasswordChange{Password: "abcdef", Confirm: "abcdef"}))
}
