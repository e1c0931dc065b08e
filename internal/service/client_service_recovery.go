// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/adapter"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/validators"
	"github.com/MKhiriev/pos-backoffice/models"
)

const resetTokenWarning = "Hand this token to the user over a trusted channel. It is shown only once and stops working at %s."

type clientRecoveryService struct {
	adapter   adapter.ServerAdapter
	session   *SessionManager
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientRecoveryService(serverAdapter adapter.ServerAdapter, session *SessionManager, logger *logger.Logger) ClientRecoveryService {
	return &clientRecoveryService{
		adapter:   serverAdapter,
		session:   session,
		validator: validators.NewUserValidator(),
		logger:    logger,
	}
}

func (s *clientRecoveryService) GenerateResetToken(ctx context.Context, userID string) (ResetTokenResult, error) {
	if !s.session.IsAuthenticated() {
		return ResetTokenResult{}, ErrNotAuthenticated
	}
	if userID == "" {
		return ResetTokenResult{}, localValidationError(validators.ErrEmptyUserID)
	}

	token, err := s.adapter.GenerateResetToken(ctx, userID)
	if err != nil {
		return ResetTokenResult{}, mapAdapterError(err)
	}

	s.logger.Info().Str("user_id", userID).Time("expires_at", token.ExpiresAt).Msg("reset token issued")
	return ResetTokenResult{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Warning:   fmt.Sprintf(resetTokenWarning, token.ExpiresAt.Local().Format(time.DateTime)),
	}, nil
}

func (s *clientRecoveryService) ChangePassword(ctx context.Context, userID string, change models.PasswordChange) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if userID == "" {
		return localValidationError(validators.ErrEmptyUserID)
	}
	if err := s.validator.Validate(ctx, change); err != nil {
		return localValidationError(err)
	}

	if err := s.adapter.SetPassword(ctx, userID, models.SetPasswordRequest{Password: change.Password}); err != nil {
		return mapAdapterError(err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password replaced")
	return nil
}
