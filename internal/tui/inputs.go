package tui

import "github.com/charmbracelet/bubbles/textinput"

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

func newSecretInput(placeholder string) textinput.Model {
	in := newInput(placeholder, 256)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

// moveFocus shifts the focus by delta over n fields and updates the text
// inputs among them.
func moveFocus(inputs []textinput.Model, focus, delta, n int) int {
	focus = (focus + delta + n) % n
	for i := range inputs {
		if i == focus {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
	return focus
}
