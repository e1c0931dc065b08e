package tui

import (
	"strings"

	"github.com/MKhiriev/pos-backoffice/internal/policy"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// Focus positions of the edit form. The first two are text inputs.
const (
	editUsername = iota
	editEmail
	editRole
	editIsAdmin
	editActive
	editFields
)

type userEditModel struct {
	loaded  models.User
	loading bool

	inputs []textinput.Model
	focus  int

	roles         policy.RoleEdit
	active        bool
	activeChanged bool

	submitting bool
	errMsg     string
}

func newUserEditModel(user models.User) userEditModel {
	username := newInput("username", 64)
	username.SetValue(user.Username)
	username.Focus()

	email := newInput("email", 254)
	email.SetValue(user.Email)

	return userEditModel{
		loaded: user,
		inputs: []textinput.Model{username, email},
		roles:  policy.RoleEdit{Role: user.Role, IsAdmin: user.IsAdmin},
		active: user.IsActive,
	}
}

// toggleRole flips the role and lets the policy derive the admin flag.
func (m *userEditModel) toggleRole() {
	next := models.RoleAdmin
	if m.roles.Role == models.RoleAdmin {
		next = models.RoleUser
	}
	res := policy.Reconcile(policy.RoleEdit{Role: next, IsAdmin: m.roles.IsAdmin, RoleChanged: true})
	m.roles = res.Edit(true, m.roles.IsAdminChanged)
}

// toggleIsAdmin flips the admin flag and lets the policy derive the role.
func (m *userEditModel) toggleIsAdmin() {
	res := policy.Reconcile(policy.RoleEdit{Role: m.roles.Role, IsAdmin: !m.roles.IsAdmin, IsAdminChanged: true})
	m.roles = res.Edit(m.roles.RoleChanged, true)
}

func (m *userEditModel) toggleActive() {
	m.active = !m.active
	m.activeChanged = m.active != m.loaded.IsActive
}

// edit collects the fields that differ from the loaded record.
func (m userEditModel) edit() service.UserEdit {
	edit := service.UserEdit{Roles: m.roles}

	if username := strings.TrimSpace(m.inputs[0].Value()); username != m.loaded.Username {
		edit.Username = &username
	}
	if email := strings.TrimSpace(m.inputs[1].Value()); email != m.loaded.Email {
		edit.Email = &email
	}
	if m.activeChanged {
		active := m.active
		edit.IsActive = &active
	}

	return edit
}

func (m userEditModel) View(spin string) string {
	if m.loading {
		return renderPage("Edit user", spin+" Loading...", "esc back")
	}

	var b strings.Builder
	b.WriteString(cursor(m.focus == editUsername) + "Username: [" + m.inputs[0].View() + "]\n")
	b.WriteString(cursor(m.focus == editEmail) + "Email:    [" + m.inputs[1].View() + "]\n")
	b.WriteString(cursor(m.focus == editRole) + "Role:     < " + string(m.roles.Role) + " >\n")
	b.WriteString(cursor(m.focus == editIsAdmin) + "Admin:    " + checkbox(m.roles.IsAdmin) + "\n")
	b.WriteString(cursor(m.focus == editActive) + "Active:   " + checkbox(m.active) + "\n")

	if !m.roles.RoleChanged && !m.roles.IsAdminChanged {
		if advisory := policy.MismatchAdvisory(m.loaded); advisory != "" {
			b.WriteString("\n" + warningStyle.Render(advisory) + "\n")
		}
	}
	if m.submitting {
		b.WriteString("\nSaving...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("Edit user "+m.loaded.Username, b.String(), "tab next field  space toggle  enter save  esc back")
}
