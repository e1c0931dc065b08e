// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// validate rejects values that are set but unusable. Missing values are
// checked by the server and client views separately.
func (cfg *StructuredConfig) validate() error {
	cost := cfg.App.PasswordHashCost
	if cost != 0 && (cost < bcrypt.MinCost || cost > bcrypt.MaxCost) {
		return ErrInvalidAppConfigs
	}

	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidDurations
	}

	if cfg.Server.LoginRatePerMinute < 0 || cfg.Server.LoginBurst < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}

	if admin := cfg.App.Admin; admin.Enabled() && (admin.Email == "" || admin.Password == "") {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.ResetTokenSweepInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
