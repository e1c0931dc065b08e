// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/pos-backoffice/internal/logger"
)

// credentialRepository is the SQLite-backed [CredentialRepository].
type credentialRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] over the client database.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{db: db, logger: logger}
}

func (r *credentialRepository) LoadCredential(ctx context.Context) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx, loadCredential).Scan(&token)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrNoCredential
	case err != nil:
		r.logger.Err(err).Str("func", "*credentialRepository.LoadCredential").Send()
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if token == "" {
		return "", ErrNoCredential
	}

	return token, nil
}

func (r *credentialRepository) SaveCredential(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, saveCredential, token); err != nil {
		r.logger.Err(err).Str("func", "*credentialRepository.SaveCredential").Send()
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *credentialRepository) ClearCredential(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clearCredential); err != nil {
		r.logger.Err(err).Str("func", "*credentialRepository.ClearCredential").Send()
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
