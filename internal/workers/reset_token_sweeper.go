// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/service"
)

// ResetTokenSweeper periodically clears password reset tokens that expired
// without being used.
type ResetTokenSweeper struct {
	users    service.UserService
	interval time.Duration
	logger   *logger.Logger
}

func NewResetTokenSweeper(users service.UserService, interval time.Duration, logger *logger.Logger) *ResetTokenSweeper {
	return &ResetTokenSweeper{
		users:    users,
		interval: interval,
		logger:   logger,
	}
}

func (s *ResetTokenSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("reset token sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reset token sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ResetTokenSweeper) sweep(ctx context.Context) {
	cleared, err := s.users.ClearExpiredResetTokens(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Msg("clearing expired reset tokens failed")
		}
		return
	}

	if cleared > 0 {
		s.logger.Info().Int64("cleared", cleared).Msg("expired reset tokens cleared")
	}
}
