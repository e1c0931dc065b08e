// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/store"
	"github.com/MKhiriev/pos-backoffice/internal/utils"
	"github.com/MKhiriev/pos-backoffice/internal/validators"
	"github.com/MKhiriev/pos-backoffice/models"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	hashCost       int

	// now is the clock used for reset token expiry.
	now func() time.Time

	metrics metrics.Recorder
	logger  *logger.Logger
}

func NewUserService(userRepository store.UserRepository, hashCost int, recorder metrics.Recorder, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		hashCost:       hashCost,
		now:            time.Now,
		metrics:        recorder,
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}
	return user, nil
}

// UpdateUser applies a partial update after checking that the actor does not
// deactivate their own account and, when the update touches role or
// is_admin, that the resulting pair agrees. Records that already disagree
// stay editable as long as the role fields are left alone.
func (s *userService) UpdateUser(ctx context.Context, actor models.User, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, validationError(err)
	}

	deactivating := update.IsActive != nil && !*update.IsActive
	if deactivating && update.ID == actor.ID {
		log.Warn().Str("user_id", actor.ID).Msg("attempt to deactivate own account")
		return models.User{}, ErrSelfDeactivation
	}

	current, err := s.userRepository.FindUserByID(ctx, update.ID)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	if update.Role != nil || update.IsAdmin != nil {
		role, isAdmin := current.Role, current.IsAdmin
		if update.Role != nil {
			role = *update.Role
		}
		if update.IsAdmin != nil {
			isAdmin = *update.IsAdmin
		}
		if (role == models.RoleAdmin) != isAdmin {
			log.Info().Str("user_id", update.ID).Str("role", string(role)).Bool("is_admin", isAdmin).Msg("role mismatch rejected")
			return models.User{}, ErrRoleMismatch
		}
	}

	updated, err := s.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Str("user_id", update.ID).Msg("user update failed")
		return models.User{}, mapStoreError(err)
	}

	if deactivating && current.IsActive {
		s.metrics.RecordDeactivation()
	}

	return updated, nil
}

func (s *userService) DeactivateUser(ctx context.Context, actor models.User, userID string) (models.User, error) {
	if userID == actor.ID {
		logger.FromContext(ctx).Warn().Str("user_id", actor.ID).Msg("attempt to deactivate own account")
		return models.User{}, ErrSelfDeactivation
	}

	inactive := false
	user, err := s.userRepository.UpdateUser(ctx, models.UserUpdate{ID: userID, IsActive: &inactive})
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	s.metrics.RecordDeactivation()

	return user, nil
}

// GenerateResetToken issues a new one-time token for userID, replacing any
// outstanding one. The token value is only ever returned here.
func (s *userService) GenerateResetToken(ctx context.Context, userID string) (models.ResetToken, error) {
	token, err := utils.RandomURLToken(resetTokenBytes)
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("generating reset token: %w", err)
	}

	expiresAt := s.now().UTC().Add(resetTokenTTL)

	if err := s.userRepository.SetResetToken(ctx, userID, token, expiresAt); err != nil {
		return models.ResetToken{}, mapStoreError(err)
	}

	s.metrics.RecordResetTokenIssued()
	logger.FromContext(ctx).Info().Str("user_id", userID).Time("expires_at", expiresAt).Msg("reset token issued")

	return models.ResetToken{Token: token, ExpiresAt: expiresAt}, nil
}

// SetPassword replaces the password of userID and clears its reset token.
func (s *userService) SetPassword(ctx context.Context, userID string, req models.SetPasswordRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return validationError(err)
	}

	hash, err := hashPassword(req.Password, s.hashCost)
	if err != nil {
		return err
	}

	if err := s.userRepository.SetPassword(ctx, userID, hash); err != nil {
		return mapStoreError(err)
	}

	s.metrics.RecordPasswordSet()

	return nil
}

func (s *userService) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	cleared, err := s.userRepository.ClearExpiredResetTokens(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("clearing expired reset tokens: %w", err)
	}

	s.metrics.RecordResetTokensSwept(cleared)

	return cleared, nil
}
