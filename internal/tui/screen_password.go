package tui

import (
	"strings"

	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/charmbracelet/bubbles/textinput"
)

type passwordModel struct {
	user    models.User
	loading bool

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newPasswordModel() passwordModel {
	secret := newSecretInput("new password")
	secret.Focus()

	return passwordModel{
		loading: true,
		inputs:  []textinput.Model{secret, newSecretInput("repeat new password")},
	}
}

func (m passwordModel) change() models.PasswordChange {
	return models.PasswordChange{Password: m.inputs[0].Value(), Confirm: m.inputs[1].Value()}
}

func (m passwordModel) View(spin string) string {
	if m.loading {
		return renderPage("Change password", spin+" Loading...", "esc back")
	}

	var b strings.Builder
	b.WriteString("User: " + m.user.Username + "\n\n")
	b.WriteString("New password: [" + m.inputs[0].View() + "]\n")
	b.WriteString("Repeat:       [" + m.inputs[1].View() + "]\n")

	if m.submitting {
		b.WriteString("\nSaving...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("Change password", b.String(), "tab next field  enter save  esc back")
}
