// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the operator client's process lifecycle.
//
// It runs the terminal UI on top of the client services and releases the
// local credential store when the UI exits.
package client
