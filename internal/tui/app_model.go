// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/guard"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// startPath is requested on launch; the guard holds it until the stored
// session is resolved.
const startPath = guard.PathUsers

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	navigator *guard.Navigator
	logger    *logger.Logger

	// path is the view shown, or waiting for the session while screen is
	// screenLoading.
	path   string
	screen screen

	menu     menuModel
	login    loginModel
	register registerModel
	users    usersModel
	edit     userEditModel
	token    resetTokenModel
	password passwordModel

	spinner           spinner.Model
	status            string
	showError         bool
	errorOverlay      errorOverlayModel
	showConfirm       bool
	confirm           confirmModel
	pendingDeactivate string

	quitByUser bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, navigator *guard.Navigator, logger *logger.Logger) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return appModel{
		ctx:       ctx,
		services:  services,
		navigator: navigator,
		logger:    logger,
		path:      startPath,
		screen:    screenLoading,
		spinner:   s,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdRestore())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitByUser = true
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				userID := m.pendingDeactivate
				m.pendingDeactivate = ""
				return m, m.cmdDeactivate(userID)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDeactivate = ""
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionChangedMsg, restoredMsg:
		return m.onSessionChanged()

	case loginDoneMsg:
		return m.onLoginDone(msg.result)

	case registerDoneMsg:
		return m.onRegisterDone(msg.result)

	case loggedOutMsg:
		if msg.err != nil {
			m.logger.Err(msg.err).Msg("logout left a stored credential behind")
		}
		next, cmd := m.navigate(guard.PathMenu)
		next.status = "Logged out"
		return next, tea.Batch(cmd, cmdClearStatus())

	case usersLoadedMsg:
		m.users.loading = false
		if msg.err != nil {
			m.showErrorf(service.UserMessage(msg.err))
			return m, nil
		}
		m.users.users = msg.users
		m.users.clamp()
		return m, nil

	case userLoadedMsg:
		return m.onUserLoaded(msg)

	case userSavedMsg:
		return m.onUserSaved(msg)

	case userDeactivatedMsg:
		if msg.err != nil {
			m.showErrorf(service.UserMessage(msg.err))
			return m, nil
		}
		m.status = msg.user.Username + " deactivated"
		m.users.loading = true
		return m, tea.Batch(m.cmdLoadUsers(), cmdClearStatus())

	case resetTokenMsg:
		m.token.generating = false
		if msg.err != nil {
			m.showErrorf(service.UserMessage(msg.err))
			return m, nil
		}
		result := msg.result
		m.token.result = &result
		return m, nil

	case passwordChangedMsg:
		return m.onPasswordChanged(msg)

	case copiedMsg:
		m.status = "Copied to clipboard"
		return m, cmdClearStatus()

	case copyFailedMsg:
		m.showErrorf(msg.err.Error())
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenUsers:
		return m.updateUsers(msg)
	case screenUserEdit:
		return m.updateUserEdit(msg)
	case screenResetToken:
		return m.updateResetToken(msg)
	case screenPassword:
		return m.updatePassword(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	spin := m.spinner.View()

	var body string
	switch m.screen {
	case screenLoading:
		body = renderPage("POS Back Office", spin+" Checking session...", "")
	case screenMenu:
		body = m.menu.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenUsers:
		body = m.users.View(spin)
	case screenUserEdit:
		body = m.edit.View(spin)
	case screenResetToken:
		body = m.token.View(spin)
	case screenPassword:
		body = m.password.View(spin)
	}

	if m.status != "" {
		body += "\n\n" + m.status
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// navigate asks the guard for path and opens whatever it allows.
func (m appModel) navigate(path string) (appModel, tea.Cmd) {
	state := m.services.Session.State()

	d := m.navigator.Navigate(state, path)
	switch d.Outcome {
	case guard.Pending:
		m.path, m.screen = path, screenLoading
		return m, nil
	case guard.Redirect:
		m.logger.Debug().Str("from", path).Str("to", d.To).Msg("view needs a session")
		path = d.To
	}

	return m.open(path, state)
}

func (m appModel) open(path string, state service.SessionState) (appModel, tea.Cmd) {
	scr, userID := route(path)
	if scr == screenMenu {
		path = guard.PathMenu
	}
	m.path, m.screen = path, scr

	switch scr {
	case screenMenu:
		m.menu = newMenuModel(state)
	case screenLogin:
		m.login = newLoginModel()
		return m, textinput.Blink
	case screenRegister:
		m.register = newRegisterModel()
		return m, textinput.Blink
	case screenUsers:
		m.users.loading = true
		return m, m.cmdLoadUsers()
	case screenUserEdit:
		m.edit = userEditModel{loading: true}
		return m, m.cmdLoadUser(path, userID)
	case screenResetToken:
		m.token = resetTokenModel{loading: true}
		return m, m.cmdLoadUser(path, userID)
	case screenPassword:
		m.password = newPasswordModel()
		return m, m.cmdLoadUser(path, userID)
	}

	return m, nil
}

// onSessionChanged re-evaluates the current view. Views the session still
// allows are left untouched.
func (m appModel) onSessionChanged() (tea.Model, tea.Cmd) {
	state := m.services.Session.State()

	if m.screen == screenLoading || guard.Evaluate(state, m.path).Outcome != guard.Allow {
		return m.navigate(m.path)
	}
	if m.screen == screenMenu {
		m.menu = newMenuModel(state)
	}
	return m, nil
}

func (m appModel) onLoginDone(result service.AuthResult) (tea.Model, tea.Cmd) {
	m.login.submitting = false

	if !result.Success {
		if errors.Is(result.Err, service.ErrStaleResponse) {
			return m, nil
		}
		m.login.errMsg = result.Message
		return m, nil
	}

	target := guard.PathMenu
	if returnTo, ok := m.navigator.TakeReturnTo(); ok {
		target = returnTo
	}
	return m.navigate(target)
}

func (m appModel) onRegisterDone(result service.AuthResult) (tea.Model, tea.Cmd) {
	m.register.submitting = false

	if !result.Success {
		if errors.Is(result.Err, service.ErrStaleResponse) {
			return m, nil
		}
		m.register.errMsg = result.Message
		return m, nil
	}

	next, cmd := m.navigate(guard.PathLogin)
	next.status = fmt.Sprintf("Account %s created. Log in to continue.", result.User.Username)
	return next, tea.Batch(cmd, cmdClearStatus())
}

func (m appModel) onUserLoaded(msg userLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.path != m.path {
		return m, nil
	}
	if msg.err != nil {
		m.showErrorf(service.UserMessage(msg.err))
		return m.navigate(guard.PathUsers)
	}

	switch m.screen {
	case screenUserEdit:
		m.edit = newUserEditModel(msg.user)
		return m, textinput.Blink
	case screenResetToken:
		m.token.user = msg.user
		m.token.loading = false
	case screenPassword:
		m.password.user = msg.user
		m.password.loading = false
		return m, textinput.Blink
	}
	return m, nil
}

func (m appModel) onUserSaved(msg userSavedMsg) (tea.Model, tea.Cmd) {
	m.edit.submitting = false

	if msg.err != nil {
		if errors.Is(msg.err, service.ErrValidation) {
			m.edit.errMsg = service.UserMessage(msg.err)
			return m, nil
		}
		m.showErrorf(service.UserMessage(msg.err))
		return m, nil
	}

	next, cmd := m.navigate(guard.PathUsers)
	next.status = "Saved " + msg.result.User.Username
	if msg.result.Advisory != "" {
		next.status += ". " + msg.result.Advisory
	}
	return next, tea.Batch(cmd, cmdClearStatus())
}

func (m appModel) onPasswordChanged(msg passwordChangedMsg) (tea.Model, tea.Cmd) {
	m.password.submitting = false

	if msg.err != nil {
		if errors.Is(msg.err, service.ErrValidation) {
			m.password.errMsg = service.UserMessage(msg.err)
			return m, nil
		}
		m.showErrorf(service.UserMessage(msg.err))
		return m, nil
	}

	username := m.password.user.Username
	next, cmd := m.navigate(guard.PathUsers)
	next.status = "Password changed for " + username
	return next, tea.Batch(cmd, cmdClearStatus())
}

func (m appModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.menu.idx > 0 {
			m.menu.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.menu.idx < len(m.menu.items)-1 {
			m.menu.idx++
		}
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.enter):
		item := m.menu.current()
		switch item.action {
		case menuNavigate:
			return m.navigate(item.path)
		case menuLogout:
			return m, m.cmdLogout()
		case menuQuit:
			m.quitByUser = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.navigator.Forget()
			return m.navigate(guard.PathMenu)
		case key.Matches(keyMsg, keys.tab):
			m.login.focus = moveFocus(m.login.inputs, m.login.focus, 1, len(m.login.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login.focus = moveFocus(m.login.inputs, m.login.focus, -1, len(m.login.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting || m.services.Session.InFlight() {
				return m, nil
			}
			identifier, secret := m.login.values()
			if identifier == "" || secret == "" {
				m.login.errMsg = "Login and password are required"
				return m, nil
			}
			m.login.submitting = true
			m.login.errMsg = ""
			return m, m.cmdLogin(identifier, secret)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m.navigate(guard.PathMenu)
		case key.Matches(keyMsg, keys.tab):
			m.register.focus = moveFocus(m.register.inputs, m.register.focus, 1, len(m.register.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register.focus = moveFocus(m.register.inputs, m.register.focus, -1, len(m.register.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting || m.services.Session.InFlight() {
				return m, nil
			}
			in := m.register.inputs
			if in[2].Value() != in[3].Value() {
				m.register.errMsg = "Passwords do not match"
				return m, nil
			}
			m.register.submitting = true
			m.register.errMsg = ""
			return m, m.cmdRegister(in[0].Value(), in[1].Value(), in[2].Value())
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateUsers(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m.navigate(guard.PathMenu)
	case key.Matches(keyMsg, keys.up):
		if m.users.idx > 0 {
			m.users.idx--
		}
		return m, nil
	case key.Matches(keyMsg, keys.down):
		if m.users.idx < len(m.users.users)-1 {
			m.users.idx++
		}
		return m, nil
	case key.Matches(keyMsg, keys.reload):
		if m.users.loading {
			return m, nil
		}
		m.users.loading = true
		return m, m.cmdLoadUsers()
	}

	user, ok := m.users.current()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.enter):
		return m.navigate(userPath(user.ID))
	case key.Matches(keyMsg, keys.resetToken):
		return m.navigate(resetTokenPath(user.ID))
	case key.Matches(keyMsg, keys.password):
		return m.navigate(passwordPath(user.ID))
	case key.Matches(keyMsg, keys.deactivate):
		m.showConfirm = true
		m.confirm.message = user.Username
		m.pendingDeactivate = user.ID
	}
	return m, nil
}

func (m appModel) updateUserEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.edit.loading {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.esc) {
			return m.navigate(guard.PathUsers)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m.navigate(guard.PathUsers)
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.down) && m.edit.focus >= editRole:
			m.edit.focus = moveFocus(m.edit.inputs, m.edit.focus, 1, editFields)
			return m, nil
		case key.Matches(keyMsg, keys.backtab), key.Matches(keyMsg, keys.up) && m.edit.focus >= editRole:
			m.edit.focus = moveFocus(m.edit.inputs, m.edit.focus, -1, editFields)
			return m, nil
		case key.Matches(keyMsg, keys.toggle) && m.edit.focus >= editRole:
			switch m.edit.focus {
			case editRole:
				m.edit.toggleRole()
			case editIsAdmin:
				m.edit.toggleIsAdmin()
			case editActive:
				m.edit.toggleActive()
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.edit.submitting {
				return m, nil
			}
			m.edit.submitting = true
			m.edit.errMsg = ""
			return m, m.cmdSaveUser(m.edit.loaded, m.edit.edit())
		}
	}

	if m.edit.focus >= editRole {
		return m, nil
	}
	var cmd tea.Cmd
	m.edit.inputs[m.edit.focus], cmd = m.edit.inputs[m.edit.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateResetToken(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		// the token is dropped with the view
		m.token = resetTokenModel{}
		return m.navigate(guard.PathUsers)
	case key.Matches(keyMsg, keys.enter):
		if m.token.loading || m.token.generating || m.token.result != nil {
			return m, nil
		}
		m.token.generating = true
		return m, m.cmdGenerateResetToken(m.token.user.ID)
	case key.Matches(keyMsg, keys.copy):
		if m.token.result == nil {
			return m, nil
		}
		return m, cmdCopyToClipboard(m.token.result.Token)
	}
	return m, nil
}

func (m appModel) updatePassword(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m.navigate(guard.PathUsers)
		case key.Matches(keyMsg, keys.tab):
			m.password.focus = moveFocus(m.password.inputs, m.password.focus, 1, len(m.password.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.password.focus = moveFocus(m.password.inputs, m.password.focus, -1, len(m.password.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.password.loading || m.password.submitting {
				return m, nil
			}
			m.password.submitting = true
			m.password.errMsg = ""
			return m, m.cmdChangePassword(m.password.user.ID, m.password.change())
		}
	}

	if m.password.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.password.inputs[m.password.focus], cmd = m.password.inputs[m.password.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdRestore() tea.Cmd {
	ctx, session := m.ctx, m.services.Session
	return func() tea.Msg {
		session.Restore(ctx)
		return restoredMsg{}
	}
}

func (m appModel) cmdLogin(identifier, secret string) tea.Cmd {
	ctx, session := m.ctx, m.services.Session
	return func() tea.Msg {
		return loginDoneMsg{result: session.Login(ctx, identifier, secret)}
	}
}

func (m appModel) cmdRegister(username, email, secret string) tea.Cmd {
	ctx, session := m.ctx, m.services.Session
	return func() tea.Msg {
		return registerDoneMsg{result: session.Register(ctx, username, email, secret)}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx, session := m.ctx, m.services.Session
	return func() tea.Msg {
		return loggedOutMsg{err: session.Logout(ctx)}
	}
}

func (m appModel) cmdLoadUsers() tea.Cmd {
	ctx, svc := m.ctx, m.services.UserService
	return func() tea.Msg {
		users, err := svc.ListUsers(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m appModel) cmdLoadUser(path, userID string) tea.Cmd {
	ctx, svc := m.ctx, m.services.UserService
	return func() tea.Msg {
		user, err := svc.GetUser(ctx, userID)
		return userLoadedMsg{path: path, user: user, err: err}
	}
}

func (m appModel) cmdSaveUser(loaded models.User, edit service.UserEdit) tea.Cmd {
	ctx, svc := m.ctx, m.services.UserService
	return func() tea.Msg {
		result, err := svc.UpdateUser(ctx, loaded, edit)
		return userSavedMsg{result: result, err: err}
	}
}

func (m appModel) cmdDeactivate(userID string) tea.Cmd {
	ctx, svc := m.ctx, m.services.UserService
	return func() tea.Msg {
		user, err := svc.Deactivate(ctx, userID)
		return userDeactivatedMsg{user: user, err: err}
	}
}

func (m appModel) cmdGenerateResetToken(userID string) tea.Cmd {
	ctx, svc := m.ctx, m.services.RecoveryService
	return func() tea.Msg {
		result, err := svc.GenerateResetToken(ctx, userID)
		return resetTokenMsg{result: result, err: err}
	}
}

func (m appModel) cmdChangePassword(userID string, change models.PasswordChange) tea.Cmd {
	ctx, svc := m.ctx, m.services.RecoveryService
	return func() tea.Msg {
		return passwordChangedMsg{err: svc.ChangePassword(ctx, userID, change)}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
