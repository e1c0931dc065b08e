// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when a username or email is already taken.
	ErrUserAlreadyExists = errors.New("username or email already exists")

	// ErrNoUserWasFound is returned when no user matches the lookup.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrInvalidRole is returned when a write stores a role the users table
	// does not know.
	ErrInvalidRole = errors.New("unknown role")

	// ErrNothingToUpdate is returned for an update without any field set.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrNoCredential is returned when the client has no persisted credential.
	ErrNoCredential = errors.New("no persisted credential")
)

// Low-level database operation errors. These wrap the driver error so the
// transport layer can map them to a generic server failure.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
