package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	toggle     key.Binding
	quit       key.Binding
	reload     key.Binding
	deactivate key.Binding
	resetToken key.Binding
	password   key.Binding
	copy       key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	toggle:     key.NewBinding(key.WithKeys(" ")),
	quit:       key.NewBinding(key.WithKeys("q")),
	reload:     key.NewBinding(key.WithKeys("r")),
	deactivate: key.NewBinding(key.WithKeys("d")),
	resetToken: key.NewBinding(key.WithKeys("t")),
	password:   key.NewBinding(key.WithKeys("p")),
	copy:       key.NewBinding(key.WithKeys("c")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n")),
}
