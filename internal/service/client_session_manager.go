// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/pos-backoffice/internal/adapter"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/store"
	"github.com/MKhiriev/pos-backoffice/internal/validators"
	"github.com/MKhiriev/pos-backoffice/models"
)

type subscriber struct {
	id int
	fn func(SessionState)
}

// SessionManager owns the client's authentication state. It is the only
// place that stores or drops the bearer token and the persisted credential.
//
// Every login, registration and restore captures the epoch current when it
// starts. Each newer login, restore or reload and every logout bump the
// epoch, so a response that arrives for an older epoch is discarded instead
// of applied. Registration does not bump it.
type SessionManager struct {
	adapter     adapter.ServerAdapter
	credentials store.CredentialRepository
	validator   validators.Validator
	logger      *logger.Logger

	mu             sync.Mutex
	state          SessionState
	epoch          uint64
	inFlight       int
	restored       bool
	subscribers    []subscriber
	nextSubscriber int
}

// NewSessionManager returns a manager in the loading state. It registers
// itself as the adapter's unauthorized hook.
func NewSessionManager(serverAdapter adapter.ServerAdapter, credentials store.CredentialRepository, logger *logger.Logger) *SessionManager {
	m := &SessionManager{
		adapter:     serverAdapter,
		credentials: credentials,
		validator:   validators.NewUserValidator(),
		logger:      logger,
		state:       SessionState{Status: SessionLoading},
	}
	serverAdapter.OnUnauthorized(m.Invalidate)
	return m
}

// State returns a snapshot of the session.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a user is signed in.
func (m *SessionManager) IsAuthenticated() bool {
	return m.State().Status == SessionAuthenticated
}

// CurrentUser returns the signed-in user.
func (m *SessionManager) CurrentUser() (models.User, bool) {
	state := m.State()
	return state.User, state.Status == SessionAuthenticated
}

// InFlight reports whether a login or registration is outstanding.
func (m *SessionManager) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight > 0
}

// Subscribe registers fn to run after every state change and returns a
// function that removes it. fn must not block.
func (m *SessionManager) Subscribe(fn func(SessionState)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSubscriber
	m.nextSubscriber++
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subscribers {
				if s.id == id {
					m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// Restore resolves the persisted credential once. Later calls return the
// current state without contacting the server; use [SessionManager.Reload]
// to resolve again.
func (m *SessionManager) Restore(ctx context.Context) SessionState {
	m.mu.Lock()
	if m.restored {
		state := m.state
		m.mu.Unlock()
		return state
	}
	m.restored = true
	m.epoch++
	epoch := m.epoch
	m.mu.Unlock()

	return m.resolve(ctx, epoch)
}

// Reload returns to the loading state and resolves the persisted
// credential again.
func (m *SessionManager) Reload(ctx context.Context) SessionState {
	m.mu.Lock()
	m.restored = true
	m.epoch++
	epoch := m.epoch
	notify := m.setLocked(SessionState{Status: SessionLoading})
	m.mu.Unlock()
	notify()

	return m.resolve(ctx, epoch)
}

func (m *SessionManager) resolve(ctx context.Context, epoch uint64) SessionState {
	token, err := m.credentials.LoadCredential(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoCredential) {
			m.logger.Err(err).Str("func", "*SessionManager.resolve").Msg("loading stored credential failed")
		}
		return m.settle(epoch, func() SessionState {
			return SessionState{Status: SessionAnonymous}
		})
	}

	user, err := m.adapter.Me(ctx, token)
	return m.settle(epoch, func() SessionState {
		switch {
		case err == nil:
			m.adapter.SetToken(token)
			return SessionState{Status: SessionAuthenticated, User: user}

		case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
			m.logger.Info().Str("func", "*SessionManager.resolve").Msg("stored credential was rejected")
			m.adapter.ClearToken()
			m.clearCredential(ctx)
			return SessionState{Status: SessionAnonymous}

		default:
			// keep the credential for a later reload
			m.logger.Warn().Err(err).Str("func", "*SessionManager.resolve").Msg("could not verify stored credential")
			return SessionState{Status: SessionAnonymous}
		}
	})
}

// settle applies next if epoch is still current and returns the resulting
// state.
func (m *SessionManager) settle(epoch uint64, next func() SessionState) SessionState {
	m.mu.Lock()
	if epoch != m.epoch {
		state := m.state
		m.mu.Unlock()
		m.logger.Debug().Uint64("epoch", epoch).Msg("discarding superseded session response")
		return state
	}
	notify := m.setLocked(next())
	state := m.state
	m.mu.Unlock()
	notify()
	return state
}

// Login authenticates with the server. On success the token is attached to
// later requests and persisted.
func (m *SessionManager) Login(ctx context.Context, identifier, secret string) AuthResult {
	req := models.LoginRequest{Identifier: identifier, Password: secret}
	if err := m.validator.Validate(ctx, req); err != nil {
		return failedAuth(localValidationError(err))
	}

	epoch := m.begin()
	defer m.done()

	user, token, err := m.adapter.Login(ctx, req)

	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		m.logger.Debug().Uint64("epoch", epoch).Msg("discarding superseded login response")
		return failedAuth(ErrStaleResponse)
	}

	if err != nil {
		err = mapAdapterError(err)
		notify := m.dropLocked(ctx)
		m.mu.Unlock()
		notify()
		m.logger.Warn().Err(err).Str("func", "*SessionManager.Login").Msg("login failed")
		return failedAuth(err)
	}

	m.adapter.SetToken(token)
	if saveErr := m.credentials.SaveCredential(ctx, token); saveErr != nil {
		m.logger.Err(saveErr).Str("func", "*SessionManager.Login").Msg("session will not survive a restart")
	}
	notify := m.setLocked(SessionState{Status: SessionAuthenticated, User: user})
	m.mu.Unlock()
	notify()

	m.logger.Info().Str("user_id", user.ID).Msg("logged in")
	return AuthResult{Success: true, User: user}
}

// Register creates an account. It never signs the new account in and never
// changes the session state.
func (m *SessionManager) Register(ctx context.Context, username, email, secret string) AuthResult {
	req := models.RegisterRequest{Username: username, Email: email, Password: secret}
	if err := m.validator.Validate(ctx, req); err != nil {
		return failedAuth(localValidationError(err))
	}

	// registration leaves the session alone, so a pending restore keeps its epoch
	epoch := m.track()
	defer m.done()

	user, err := m.adapter.Register(ctx, req)

	m.mu.Lock()
	superseded := epoch != m.epoch
	m.mu.Unlock()
	if superseded {
		m.logger.Debug().Uint64("epoch", epoch).Msg("discarding superseded registration response")
		return failedAuth(ErrStaleResponse)
	}

	if err != nil {
		err = mapAdapterError(err)
		m.logger.Warn().Err(err).Str("func", "*SessionManager.Register").Msg("registration failed")
		return failedAuth(err)
	}

	m.logger.Info().Str("user_id", user.ID).Msg("account registered")
	return AuthResult{Success: true, User: user}
}

// Logout drops the session. It is safe to call in any state. The returned
// error only reports a failure to remove the persisted credential; the
// session is anonymous either way.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.epoch++
	m.adapter.ClearToken()
	err := m.credentials.ClearCredential(ctx)
	notify := m.setLocked(SessionState{Status: SessionAnonymous})
	m.mu.Unlock()
	notify()

	if err != nil {
		m.logger.Err(err).Str("func", "*SessionManager.Logout").Send()
		return fmt.Errorf("clearing stored credential: %w", err)
	}
	return nil
}

// Invalidate ends an authenticated session whose token the server no
// longer accepts.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	if m.state.Status != SessionAuthenticated {
		m.mu.Unlock()
		return
	}
	m.epoch++
	notify := m.dropLocked(context.Background())
	m.mu.Unlock()

	m.logger.Info().Msg("session expired")
	notify()
}

func (m *SessionManager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.inFlight++
	return m.epoch
}

// track counts a call as in flight without superseding earlier ones.
func (m *SessionManager) track() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight++
	return m.epoch
}

func (m *SessionManager) done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
}

// dropLocked moves to the anonymous state, removing the token and the
// credential of an authenticated session. m.mu must be held.
func (m *SessionManager) dropLocked(ctx context.Context) func() {
	if m.state.Status == SessionAuthenticated {
		m.adapter.ClearToken()
		m.clearCredential(ctx)
	}
	return m.setLocked(SessionState{Status: SessionAnonymous})
}

func (m *SessionManager) clearCredential(ctx context.Context) {
	if err := m.credentials.ClearCredential(ctx); err != nil {
		m.logger.Err(err).Str("func", "*SessionManager.clearCredential").Send()
	}
}

// setLocked stores next and returns the notification to run once m.mu is
// released. m.mu must be held.
func (m *SessionManager) setLocked(next SessionState) func() {
	if m.state == next {
		return func() {}
	}
	m.state = next

	subs := make([]func(SessionState), len(m.subscribers))
	for i, s := range m.subscribers {
		subs[i] = s.fn
	}
	return func() {
		for _, fn := range subs {
			fn(next)
		}
	}
}

func failedAuth(err error) AuthResult {
	return AuthResult{Success: false, Message: authMessage(err), Err: err}
}
