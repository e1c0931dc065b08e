// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode"

	"github.com/MKhiriev/pos-backoffice/models"
)

// MinPasswordLength is the shortest secret accepted anywhere in the system.
const MinPasswordLength = 6

const maxUsernameLength = 64

// Field names accepted by [UserValidator.Validate] for field-level scoping.
const (
	FieldIdentifier      = "identifier"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldRole            = "role"
	FieldUserID          = "user_id"
	FieldAnyChange       = "any_change"
)

// UserValidator implements [Validator] for the account request models:
// LoginRequest, RegisterRequest, UserUpdate, SetPasswordRequest and
// PasswordChange.
type UserValidator struct{}

func NewUserValidator() *UserValidator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, input any, fields ...string) error {
	switch value := input.(type) {
	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.UserUpdate:
		return v.validateUpdate(value, fields...)
	case *models.UserUpdate:
		return v.validateUpdate(*value, fields...)

	case models.SetPasswordRequest:
		return ValidatePassword(value.Password)
	case *models.SetPasswordRequest:
		return ValidatePassword(value.Password)

	case models.PasswordChange:
		return v.validatePasswordChange(value, fields...)
	case *models.PasswordChange:
		return v.validatePasswordChange(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// ValidatePassword checks the minimum length of a new secret.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateUsername checks that a username is non-empty, reasonably short and
// has no whitespace.
func ValidateUsername(username string) error {
	if username == "" || len(username) > maxUsernameLength {
		return ErrInvalidUsername
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateEmail accepts a bare address only, without a display name.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func (v *UserValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentifier, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentifier:
			if strings.TrimSpace(req.Identifier) == "" {
				return ErrEmptyIdentifier
			}
		case FieldPassword:
			// existing accounts may predate the length rule
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := ValidateUsername(req.Username); err != nil {
				return err
			}
		case FieldEmail:
			if err := ValidateEmail(req.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := ValidatePassword(req.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateUpdate(update models.UserUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldAnyChange, FieldUsername, FieldEmail, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if update.ID == "" {
				return ErrEmptyUserID
			}
		case FieldAnyChange:
			if update.Empty() {
				return ErrNoFieldsToUpdate
			}
		case FieldUsername:
			if update.Username != nil {
				if err := ValidateUsername(*update.Username); err != nil {
					return err
				}
			}
		case FieldEmail:
			if update.Email != nil {
				if err := ValidateEmail(*update.Email); err != nil {
					return err
				}
			}
		case FieldRole:
			if update.Role != nil && !update.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validatePasswordChange(change models.PasswordChange, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldPasswordConfirm}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if err := ValidatePassword(change.Password); err != nil {
				return err
			}
		case FieldPasswordConfirm:
			if change.Password != change.Confirm {
				return ErrPasswordsDontMatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
