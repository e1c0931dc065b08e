// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "errors"

var (
	ErrUserQuit   = errors.New("user quit")
	ErrNoServices = errors.New("client services are not initialized")
)
