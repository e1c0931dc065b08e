package tui

import (
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/MKhiriev/pos-backoffice/models"
)

// sessionChangedMsg is sent by the session subscription.
type sessionChangedMsg struct{}

type restoredMsg struct{}

type loginDoneMsg struct {
	result service.AuthResult
}

type registerDoneMsg struct {
	result service.AuthResult
}

type loggedOutMsg struct {
	err error
}

type usersLoadedMsg struct {
	users []models.User
	err   error
}

// userLoadedMsg carries the user requested by the view at path.
type userLoadedMsg struct {
	path string
	user models.User
	err  error
}

type userSavedMsg struct {
	result service.UserUpdateResult
	err    error
}

type userDeactivatedMsg struct {
	user models.User
	err  error
}

type resetTokenMsg struct {
	result service.ResetTokenResult
	err    error
}

type passwordChangedMsg struct {
	err error
}

type copiedMsg struct{}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
