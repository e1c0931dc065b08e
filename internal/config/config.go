// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// back-office server and client. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token and password hashing parameters.
	App App `envPrefix:"APP_"`

	// Storage holds database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address, timeouts and login rate limits.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the server API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds token lifecycle and password hashing settings.
type App struct {
	// TokenSignKey is the HMAC key used to sign and verify session JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session JWT remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PasswordHashCost is the bcrypt cost factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// Admin is the account created on startup when no user with its
	// username or email exists yet. Ignored when Username is empty.
	Admin BootstrapAdmin `envPrefix:"ADMIN_"`
}

// BootstrapAdmin describes the initial administrator account.
// It is read from the environment only.
type BootstrapAdmin struct {
	// Env: APP_ADMIN_USERNAME
	Username string `env:"USERNAME"`
	// Env: APP_ADMIN_EMAIL
	Email string `env:"EMAIL"`
	// Env: APP_ADMIN_PASSWORD
	Password string `env:"PASSWORD"`
}

// Enabled reports whether a bootstrap administrator is configured.
func (a BootstrapAdmin) Enabled() bool {
	return a.Username != ""
}

// Server holds settings for the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the "host:port" the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LoginRatePerMinute is the sustained number of login attempts
	// allowed per client IP.
	// Env: SERVER_LOGIN_RATE_PER_MINUTE
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE"`

	// LoginBurst is the number of login attempts a client IP may make
	// back to back before the rate applies.
	// Env: SERVER_LOGIN_BURST
	LoginBurst int `env:"LOGIN_BURST"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. The server expects a
	// PostgreSQL URI, the client a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the client's outbound connection settings.
type Adapter struct {
	// HTTPAddress is the base address of the back-office API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ResetTokenSweepInterval is how often expired password reset tokens
	// are cleared from storage.
	// Env: WORKERS_RESET_TOKEN_SWEEP_INTERVAL
	ResetTokenSweepInterval time.Duration `env:"RESET_TOKEN_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server
// configuration from all available sources in the following priority order
// (the first source that sets a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateServer()
}
