// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by both the
// back-office server and its client.
//
// The server writes Msg* strings into response bodies; the client matches on
// them to tell apart failures that share a status code, and shows some of
// them to the operator verbatim.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is returned when no account matches the
	// identifier or the password is wrong. Both cases share this text.
	MsgInvalidCredentials = "invalid username/password"

	// MsgAccountInactive is returned when the credentials are correct but an
	// administrator deactivated the account.
	MsgAccountInactive = "account is inactive"

	// MsgUserAlreadyExists is returned when registration or an update would
	// reuse a taken username or email.
	MsgUserAlreadyExists = "username or email already exists"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a bearer token is well-formed but
	// past its expiry time.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token cannot be
	// verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when an authenticated route runs
	// without a user ID in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgAdminRequired is returned when a non-admin or inactive account calls
	// an administration endpoint.
	MsgAdminRequired = "admin access required"

	// MsgUserNotFound is returned when the target account does not exist.
	MsgUserNotFound = "user not found"

	// MsgPasswordTooShort is returned when a new password is shorter than
	// the minimum length.
	MsgPasswordTooShort = "password is too short"

	// MsgRoleMismatch is returned when a write payload leaves role and
	// is_admin disagreeing.
	MsgRoleMismatch = "role and is_admin disagree"

	// MsgNothingToUpdate is returned for an update without any field set.
	MsgNothingToUpdate = "nothing to update"

	// MsgSelfDeactivation is returned when an administrator tries to
	// deactivate their own account.
	MsgSelfDeactivation = "cannot deactivate own account"

	// MsgTooManyRequests is returned by the login rate limiter.
	MsgTooManyRequests = "too many requests"

	// MsgRegistrationFailed is returned when registration fails for a reason
	// other than a conflict or invalid input.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when login fails for a reason other than
	// bad credentials.
	MsgLoginFailed = "login failed"
)
