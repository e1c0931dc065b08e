// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package policy keeps a user's role and is_admin fields in agreement on
// every write the client builds.
//
// Both fields describe whether an account is an administrator. Records that
// already disagree are shown as stored and flagged; they are never corrected
// behind the operator's back.
package policy
