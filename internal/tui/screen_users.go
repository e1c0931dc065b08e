package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/pos-backoffice/internal/policy"
	"github.com/MKhiriev/pos-backoffice/models"
)

type usersModel struct {
	users   []models.User
	idx     int
	loading bool
}

func (m usersModel) current() (models.User, bool) {
	if m.idx < 0 || m.idx >= len(m.users) {
		return models.User{}, false
	}
	return m.users[m.idx], true
}

func (m *usersModel) clamp() {
	if m.idx >= len(m.users) {
		m.idx = len(m.users) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m usersModel) View(spin string) string {
	var b strings.Builder

	switch {
	case m.loading && len(m.users) == 0:
		b.WriteString(spin + " Loading users...\n")
	case len(m.users) == 0:
		b.WriteString("No users\n")
	default:
		for i, u := range m.users {
			state := "active"
			if !u.IsActive {
				state = "inactive"
			}
			line := fmt.Sprintf("%s%-20s %-28s %-6s %s", cursor(i == m.idx), fitText(u.Username, 20), fitText(u.Email, 28), u.Role, state)
			if !policy.Consistent(u.Role, u.IsAdmin) {
				line += " " + warningStyle.Render("(!)")
			}
			b.WriteString(line + "\n")
		}
		if m.loading {
			b.WriteString("\n" + spin + " Refreshing...\n")
		}
	}

	return renderPage("Users", b.String(), "enter edit  t reset token  p password  d deactivate  r reload  esc menu")
}
