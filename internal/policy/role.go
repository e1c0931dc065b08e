// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import (
	"fmt"

	"github.com/MKhiriev/pos-backoffice/models"
)

// RoleEdit is the state of the two role fields in an edit form: their
// current values and which of them the operator changed.
type RoleEdit struct {
	Role    models.Role
	IsAdmin bool

	RoleChanged    bool
	IsAdminChanged bool
}

// RoleResolution is the pair to send, or to keep, after an edit.
type RoleResolution struct {
	Role    models.Role
	IsAdmin bool

	// Changed is set when the pair must be written.
	Changed bool

	// Mismatch is set when neither field was touched and the loaded pair
	// already disagrees.
	Mismatch bool
}

// Reconcile derives a consistent role pair from a form edit. The changed
// field decides the other one; when both changed, role wins. An untouched
// pair is returned exactly as loaded.
//
// Reconcile is idempotent: feeding a resolution back with the same change
// flags yields the same resolution.
func Reconcile(edit RoleEdit) RoleResolution {
	switch {
	case edit.RoleChanged:
		return RoleResolution{
			Role:    edit.Role,
			IsAdmin: edit.Role == models.RoleAdmin,
			Changed: true,
		}
	case edit.IsAdminChanged:
		return RoleResolution{
			Role:    models.RoleFor(edit.IsAdmin),
			IsAdmin: edit.IsAdmin,
			Changed: true,
		}
	default:
		return RoleResolution{
			Role:     edit.Role,
			IsAdmin:  edit.IsAdmin,
			Mismatch: !Consistent(edit.Role, edit.IsAdmin),
		}
	}
}

// Edit turns r back into a form edit with the given change flags.
func (r RoleResolution) Edit(roleChanged, isAdminChanged bool) RoleEdit {
	return RoleEdit{
		Role:           r.Role,
		IsAdmin:        r.IsAdmin,
		RoleChanged:    roleChanged,
		IsAdminChanged: isAdminChanged,
	}
}

// Apply writes the resolved pair into update. Untouched pairs are left out
// so the server keeps the stored values.
func (r RoleResolution) Apply(update *models.UserUpdate) {
	if !r.Changed {
		update.Role, update.IsAdmin = nil, nil
		return
	}

	role, isAdmin := r.Role, r.IsAdmin
	update.Role, update.IsAdmin = &role, &isAdmin
}

// Consistent reports whether role and isAdmin agree.
func Consistent(role models.Role, isAdmin bool) bool {
	return (role == models.RoleAdmin) == isAdmin
}

// MismatchAdvisory returns a display warning for a record whose role fields
// disagree, or "" when they agree.
func MismatchAdvisory(user models.User) string {
	if Consistent(user.Role, user.IsAdmin) {
		return ""
	}
	return fmt.Sprintf("role is %q but is_admin is %t; change either field to make them agree", user.Role, user.IsAdmin)
}
