package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newLoginModel() loginModel {
	identifier := newInput("username or email", 254)
	identifier.Focus()

	return loginModel{
		inputs: []textinput.Model{identifier, newSecretInput("password")},
	}
}

func (m loginModel) values() (identifier, secret string) {
	return strings.TrimSpace(m.inputs[0].Value()), m.inputs[1].Value()
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("Login:    [" + m.inputs[0].View() + "]\n")
	b.WriteString("Password: [" + m.inputs[1].View() + "]\n")

	if m.submitting {
		b.WriteString("\nSigning in...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("Log in", b.String(), "tab next field  enter log in  esc back")
}
