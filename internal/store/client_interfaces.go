// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CredentialRepository keeps the client's bearer credential between runs.
// At most one credential is stored.
type CredentialRepository interface {
	// LoadCredential returns [ErrNoCredential] when nothing is stored.
	LoadCredential(ctx context.Context) (string, error)
	SaveCredential(ctx context.Context, token string) error
	// ClearCredential succeeds when nothing is stored.
	ClearCredential(ctx context.Context) error
}
