// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account-related input before it reaches storage
// or leaves the client.
//
// The same rules run on both sides: the client validates forms locally so an
// obviously bad request never costs a round trip, and the server validates
// again because clients are not trusted.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
