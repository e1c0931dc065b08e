// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/pos-backoffice/internal/adapter"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/policy"
	"github.com/MKhiriev/pos-backoffice/internal/validators"
	"github.com/MKhiriev/pos-backoffice/models"
)

type clientUserService struct {
	adapter   adapter.ServerAdapter
	session   *SessionManager
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientUserService(serverAdapter adapter.ServerAdapter, session *SessionManager, logger *logger.Logger) ClientUserService {
	return &clientUserService{
		adapter:   serverAdapter,
		session:   session,
		validator: validators.NewUserValidator(),
		logger:    logger,
	}
}

func (s *clientUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	users, err := s.adapter.ListUsers(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return users, nil
}

func (s *clientUserService) GetUser(ctx context.Context, userID string) (models.User, error) {
	if !s.session.IsAuthenticated() {
		return models.User{}, ErrNotAuthenticated
	}
	if userID == "" {
		return models.User{}, localValidationError(validators.ErrEmptyUserID)
	}

	user, err := s.adapter.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}
	return user, nil
}

func (s *clientUserService) UpdateUser(ctx context.Context, loaded models.User, edit UserEdit) (UserUpdateResult, error) {
	current, ok := s.session.CurrentUser()
	if !ok {
		return UserUpdateResult{}, ErrNotAuthenticated
	}

	update := models.UserUpdate{
		ID:       loaded.ID,
		Username: edit.Username,
		Email:    edit.Email,
		IsActive: edit.IsActive,
	}
	if update.IsActive != nil && !*update.IsActive && loaded.ID == current.ID {
		s.logger.Warn().Str("user_id", current.ID).Msg("refusing to deactivate own account")
		return UserUpdateResult{}, ErrSelfDeactivation
	}

	roles := policy.Reconcile(edit.Roles)
	roles.Apply(&update)

	if err := s.validator.Validate(ctx, update); err != nil {
		return UserUpdateResult{}, localValidationError(err)
	}

	saved, err := s.adapter.UpdateUser(ctx, update)
	if err != nil {
		return UserUpdateResult{}, mapAdapterError(err)
	}

	result := UserUpdateResult{User: saved}
	if roles.Mismatch {
		result.Advisory = policy.MismatchAdvisory(loaded)
	}
	return result, nil
}

func (s *clientUserService) Deactivate(ctx context.Context, userID string) (models.User, error) {
	current, ok := s.session.CurrentUser()
	if !ok {
		return models.User{}, ErrNotAuthenticated
	}
	if userID == "" {
		return models.User{}, localValidationError(validators.ErrEmptyUserID)
	}
	if userID == current.ID {
		s.logger.Warn().Str("user_id", current.ID).Msg("refusing to deactivate own account")
		return models.User{}, ErrSelfDeactivation
	}

	user, err := s.adapter.DeactivateUser(ctx, userID)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}
	return user, nil
}
