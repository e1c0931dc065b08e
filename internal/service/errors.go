// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Errors shared by the server services and the client error mapper.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username/password")
	ErrAccountInactive     = errors.New("account is inactive")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrPasswordTooShort = errors.New("password is too short")
	ErrRoleMismatch     = errors.New("role and is_admin disagree")
	ErrSelfDeactivation = errors.New("cannot deactivate own account")
	ErrAdminRequired    = errors.New("admin access required")
	ErrNoUserID         = errors.New("no user ID provided")
)

// Client-side errors.
var (
	// ErrValidation is returned when input is rejected locally, before any
	// request is sent.
	ErrValidation = errors.New("validation failed")

	// ErrAuthorizationDenied is returned when the server refuses an
	// administrative action to the current session.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrTransportFailure is returned when the server could not be reached
	// or answered with an unexpected failure.
	ErrTransportFailure = errors.New("server unavailable")

	// ErrStaleResponse is returned when a response arrived after a newer
	// session operation superseded the request.
	ErrStaleResponse = errors.New("response superseded by a newer session operation")

	// ErrNotAuthenticated is returned by operations that need a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username or email already exists")
)
