// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"io"

	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/tui"
)

type App struct {
	ui      UI
	storage io.Closer
	logger  *logger.Logger
}

func NewApp(ui UI, storage io.Closer, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, ErrNoUI
	}
	if storage == nil {
		return nil, ErrNoStorage
	}
	return &App{ui: ui, storage: storage, logger: logger}, nil
}

// Run blocks until the operator quits or ctx is cancelled. Quitting is not
// an error.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("client started")

	err := a.ui.Run(ctx)
	if closeErr := a.storage.Close(); closeErr != nil {
		a.logger.Err(closeErr).Msg("closing client storage failed")
	}

	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("client closed by operator")
		return nil
	}
	if err != nil {
		return err
	}

	a.logger.Info().Msg("client stopped")
	return nil
}
