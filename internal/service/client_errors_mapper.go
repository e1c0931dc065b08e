// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/pos-backoffice/internal/adapter"
	"github.com/MKhiriev/pos-backoffice/internal/app"
)

const (
	msgActionFailed    = "The action could not be completed. Please try again."
	msgSelfProtection  = "You cannot deactivate your own account."
	msgSessionEnded    = "Your session has ended. Please log in again."
	msgAdminOnly       = "Administrator access is required for this action."
	msgUserMissing     = "The user no longer exists."
	msgUserExists      = "That username or email is already taken."
	msgServerRejected  = "The server rejected the change: "
	msgStaleSuperseded = "The request was superseded by a newer one."
)

// remoteError is a failed server call classified into the client taxonomy.
// It matches both its kind and the original adapter error.
type remoteError struct {
	kind error
	text string
	err  error
}

func (e *remoteError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *remoteError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// serverText returns the server's message carried by err, if any.
func serverText(err error) string {
	var re *remoteError
	if errors.As(err, &re) {
		return re.text
	}
	return ""
}

// mapAdapterError translates an adapter failure into the client error
// taxonomy.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	text := adapter.ResponseText(err)
	if errors.Is(err, adapter.ErrTransport) || errors.Is(err, adapter.ErrMalformedResponse) {
		// no usable server text
		text = ErrTransportFailure.Error()
	}

	var kind error
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		kind = ErrNotAuthenticated
		if text == app.MsgInvalidCredentials {
			kind = ErrInvalidCredentials
		}

	case errors.Is(err, adapter.ErrForbidden):
		switch text {
		case app.MsgAccountInactive:
			kind = ErrAccountInactive
		case app.MsgSelfDeactivation:
			kind = ErrSelfDeactivation
		default:
			kind = ErrAuthorizationDenied
		}

	case errors.Is(err, adapter.ErrBadRequest):
		switch text {
		case app.MsgPasswordTooShort:
			kind = ErrPasswordTooShort
		case app.MsgRoleMismatch:
			kind = ErrRoleMismatch
		default:
			kind = ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrNotFound):
		kind = ErrUserNotFound

	case errors.Is(err, adapter.ErrConflict):
		kind = ErrUserAlreadyExists

	default:
		// transport, 429, 5xx, unexpected status and malformed bodies
		kind = ErrTransportFailure
	}

	return &remoteError{kind: kind, text: text, err: err}
}

// localValidationError wraps a local validation failure.
func localValidationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// authMessage is the text shown for a failed login or registration: the
// server's own message when there is one.
func authMessage(err error) string {
	switch {
	case errors.Is(err, ErrStaleResponse):
		return msgStaleSuperseded
	case errors.Is(err, ErrValidation):
		return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	}
	if text := serverText(err); text != "" {
		return text
	}
	return err.Error()
}

// UserMessage returns the text shown to an operator after a failed
// administrative action.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	case errors.Is(err, ErrSelfDeactivation):
		return msgActionFailed + " " + msgSelfProtection
	case errors.Is(err, ErrNotAuthenticated):
		return msgSessionEnded
	case errors.Is(err, ErrAuthorizationDenied):
		return msgAdminOnly
	case errors.Is(err, ErrUserNotFound):
		return msgUserMissing
	case errors.Is(err, ErrUserAlreadyExists):
		return msgUserExists
	case errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrRoleMismatch), errors.Is(err, ErrInvalidDataProvided):
		return msgServerRejected + serverText(err)
	case errors.Is(err, ErrStaleResponse):
		return msgStaleSuperseded
	default:
		return msgActionFailed
	}
}
