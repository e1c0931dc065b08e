// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the operator's terminal interface. Every view change goes
// through the route guard, and session changes pushed by the session
// manager make the current view re-evaluate.
package tui

import (
	"context"

	"github.com/MKhiriev/pos-backoffice/internal/guard"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
	logger   *logger.Logger

	// options are passed to every program; tests use them to drop the
	// terminal.
	options []tea.ProgramOption
}

func New(services *service.ClientServices, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.Session == nil {
		return nil, ErrNoServices
	}
	return &TUI{
		services: services,
		logger:   logger,
		options:  []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// Run shows the interface until the operator quits or ctx is cancelled.
// Quitting returns [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services, guard.NewNavigator(), t.logger)

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.options...)
	program := tea.NewProgram(model, opts...)

	// Send blocks until the event loop reads the message; the session may
	// notify from inside a command.
	unsubscribe := t.services.Session.Subscribe(func(service.SessionState) {
		go program.Send(sessionChangedMsg{})
	})
	defer unsubscribe()

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := final.(appModel); ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
