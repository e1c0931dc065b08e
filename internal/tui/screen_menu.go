package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/pos-backoffice/internal/guard"
	"github.com/MKhiriev/pos-backoffice/internal/service"
)

type menuAction int

const (
	menuNavigate menuAction = iota
	menuLogout
	menuQuit
)

type menuItem struct {
	label  string
	action menuAction
	path   string
}

type menuModel struct {
	items  []menuItem
	idx    int
	header string
}

func newMenuModel(state service.SessionState) menuModel {
	m := menuModel{}

	switch state.Status {
	case service.SessionAuthenticated:
		m.header = fmt.Sprintf("Signed in as %s (%s)", state.User.Username, state.User.Role)
		m.items = []menuItem{
			{label: "Users", action: menuNavigate, path: guard.PathUsers},
			{label: "Log out", action: menuLogout},
		}
	case service.SessionAnonymous:
		m.header = "Not signed in"
		m.items = []menuItem{
			{label: "Log in", action: menuNavigate, path: guard.PathLogin},
			{label: "Register", action: menuNavigate, path: guard.PathRegister},
		}
	default:
		m.header = "Checking session..."
		m.items = []menuItem{
			{label: "Log in", action: menuNavigate, path: guard.PathLogin},
		}
	}
	m.items = append(m.items, menuItem{label: "Quit", action: menuQuit})

	return m
}

func (m menuModel) current() menuItem {
	return m.items[m.idx]
}

func (m menuModel) View() string {
	var b strings.Builder
	b.WriteString(m.header)
	b.WriteString("\n\n")
	for i, item := range m.items {
		b.WriteString(cursor(i == m.idx))
		b.WriteString(item.label)
		b.WriteString("\n")
	}
	return renderPage("POS Back Office", b.String(), "↑/↓ select  enter open  q quit")
}
