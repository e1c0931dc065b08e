// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	logger *logger.Logger
	db     *DB
	psql   sq.StatementBuilderType
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var role string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.IsAdmin,
		&user.IsActive,
		&user.ResetPasswordToken,
		&user.ResetPasswordExpires,
		&user.CreatedAt,
	)
	user.Role = models.Role(role)

	return user, err
}

// writeError translates a failed INSERT/UPDATE into the repository taxonomy.
func writeError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrUserAlreadyExists
	case pgerrcode.CheckViolation:
		return ErrInvalidRole
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoUserWasFound
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

// CreateUser persists a new account and returns it as stored.
//
// Error handling:
//   - unique_violation (23505) → [ErrUserAlreadyExists].
//   - check_violation (23514) → [ErrInvalidRole].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role), user.IsAdmin, user.IsActive)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, writeError(err)
	}

	return created, nil
}

// FindUserByIdentifier returns the account whose username or email equals identifier.
func (r *userRepository) FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByIdentifier", findUserByIdentifier, identifier)
}

// FindUserByID returns the account with the given ID.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	err := r.db.withRetry(ctx, func() error {
		var scanErr error
		found, scanErr = scanUser(r.db.QueryRowContext(ctx, query, arg))
		return scanErr
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// ListUsers returns every account ordered by creation time.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.psql.
		Select(userColumnNames...).
		From("users").
		OrderBy("created_at", "username").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var users []models.User
	err = r.db.withRetry(ctx, func() error {
		users = make([]models.User, 0)

		rows, queryErr := r.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		for rows.Next() {
			user, scanErr := scanUser(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			users = append(users, user)
		}

		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		if errors.Is(err, ErrScanningRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return users, nil
}

// UpdateUser applies the non-nil fields of update and returns the stored result.
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return models.User{}, ErrNothingToUpdate
	}

	builder := r.psql.Update("users").Where(sq.Eq{"id": update.ID})
	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.Role != nil {
		builder = builder.Set("role", string(*update.Role))
	}
	if update.IsAdmin != nil {
		builder = builder.Set("is_admin", *update.IsAdmin)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	query, args, err := builder.Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, writeError(err)
	}

	return updated, nil
}

// SetResetToken stores token as the account's only outstanding reset token.
func (r *userRepository) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return r.execOne(ctx, "*userRepository.SetResetToken", setResetToken, userID, token, expiresAt)
}

// SetPassword replaces the password hash and invalidates any reset token.
func (r *userRepository) SetPassword(ctx context.Context, userID, passwordHash string) error {
	return r.execOne(ctx, "*userRepository.SetPassword", setPassword, userID, passwordHash)
}

func (r *userRepository) execOne(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ClearExpiredResetTokens removes reset tokens that expired before now and
// returns how many accounts were affected.
func (r *userRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, clearExpiredResetTokens, now)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.ClearExpiredResetTokens").Send()
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return result.RowsAffected()
}
