package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newRegisterModel() registerModel {
	username := newInput("username", 64)
	username.Focus()

	return registerModel{
		inputs: []textinput.Model{
			username,
			newInput("email", 254),
			newSecretInput("password"),
			newSecretInput("repeat password"),
		},
	}
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("Username: [" + m.inputs[0].View() + "]\n")
	b.WriteString("Email:    [" + m.inputs[1].View() + "]\n")
	b.WriteString("Password: [" + m.inputs[2].View() + "]\n")
	b.WriteString("Repeat:   [" + m.inputs[3].View() + "]\n")

	if m.submitting {
		b.WriteString("\nCreating account...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("Register", b.String(), "tab next field  enter create  esc back")
}
