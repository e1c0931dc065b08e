package tui

import (
	"strings"

	"github.com/MKhiriev/pos-backoffice/internal/guard"
)

type screen int

const (
	screenLoading screen = iota
	screenMenu
	screenLogin
	screenRegister
	screenUsers
	screenUserEdit
	screenResetToken
	screenPassword
)

const (
	resetTokenSuffix = "/reset-token"
	passwordSuffix   = "/password"
)

func userPath(userID string) string {
	return guard.PathUsers + "/" + userID
}

func resetTokenPath(userID string) string {
	return userPath(userID) + resetTokenSuffix
}

func passwordPath(userID string) string {
	return userPath(userID) + passwordSuffix
}

// route maps a view path to its screen and the user it addresses.
// Unknown paths open the menu.
func route(path string) (screen, string) {
	switch path {
	case guard.PathMenu:
		return screenMenu, ""
	case guard.PathLogin:
		return screenLogin, ""
	case guard.PathRegister:
		return screenRegister, ""
	case guard.PathUsers:
		return screenUsers, ""
	}

	rest, ok := strings.CutPrefix(path, guard.PathUsers+"/")
	if !ok || rest == "" {
		return screenMenu, ""
	}

	userID, action, _ := strings.Cut(rest, "/")
	if userID == "" {
		return screenMenu, ""
	}
	switch "/" + action {
	case "/":
		return screenUserEdit, userID
	case resetTokenSuffix:
		return screenResetToken, userID
	case passwordSuffix:
		return screenPassword, userID
	default:
		return screenMenu, ""
	}
}
