package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/app"
	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── admin gate ───────────────────────────────────────────────────────────────

func TestUsers_AdminGate(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		setup      func(d testDeps)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no token",
			setup:      func(d testDeps) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "regular user",
			headers: map[string]string{"Authorization": "Bearer user-token"},
			setup: func(d testDeps) {
				d.auth.EXPECT().ParseToken(gomock.Any(), "user-token").Return(models.Token{UserID: plainUser.ID}, nil)
				d.auth.EXPECT().CurrentUser(gomock.Any(), plainUser.ID).Return(plainUser, nil)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   app.MsgAdminRequired,
		},
		{
			name:    "admin flag without admin role",
			headers: map[string]string{"Authorization": "Bearer user-token"},
			setup: func(d testDeps) {
				odd := plainUser
				odd.IsAdmin = true
				d.auth.EXPECT().ParseToken(gomock.Any(), "user-token").Return(models.Token{UserID: odd.ID}, nil)
				d.auth.EXPECT().CurrentUser(gomock.Any(), odd.ID).Return(odd, nil)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   app.MsgAdminRequired,
		},
		{
			name:    "deactivated admin",
			headers: adminHeaders,
			setup: func(d testDeps) {
				d.auth.EXPECT().ParseToken(gomock.Any(), "admin-token").Return(models.Token{UserID: adminUser.ID}, nil)
				d.auth.EXPECT().CurrentUser(gomock.Any(), adminUser.ID).Return(models.User{}, service.ErrAccountInactive)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   app.MsgAccountInactive,
		},
		{
			name:    "invalid token",
			headers: map[string]string{"Authorization": "Bearer forged"},
			setup: func(d testDeps) {
				d.auth.EXPECT().ParseToken(gomock.Any(), "forged").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgTokenIsExpiredOrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t, config.Server{})
			tt.setup(d)

			rr := doRequest(d.router, http.MethodGet, "/api/users", "", tt.headers)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody+"\n", rr.Body.String())
			}
		})
	}
}

// ── list / get ───────────────────────────────────────────────────────────────

func TestListUsers(t *testing.T) {
	t.Run("users", func(t *testing.T) {
		d := newTestDeps(t, config.Server{})
		expectAdmin(d)
		d.users.EXPECT().ListUsers(gomock.Any()).Return([]models.User{adminUser, plainUser}, nil)

		rr := doRequest(d.router, http.MethodGet, "/api/users", "", adminHeaders)

		require.Equal(t, http.StatusOK, rr.Code)
		var got []models.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		d := newTestDeps(t, config.Server{})
		expectAdmin(d)
		d.users.EXPECT().ListUsers(gomock.Any()).Return(nil, nil)

		rr := doRequest(d.router, http.MethodGet, "/api/users", "", adminHeaders)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestGetUser_NotFound(t *testing.T) {
	d := newTestDeps(t, config.Server{})
	expectAdmin(d)
	d.users.EXPECT().GetUser(gomock.Any(), "missing").Return(models.User{}, service.ErrUserNotFound)

	rr := doRequest(d.router, http.MethodGet, "/api/users/missing", "", adminHeaders)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgUserNotFound+"\n", rr.Body.String())
}

// ── update ───────────────────────────────────────────────────────────────────

func TestUpdateUser(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(d testDeps)
		wantStatus int
		wantBody   string
	}{
		{
			name: "promote",
			body: `{"role":"admin","is_admin":true}`,
			setup: func(d testDeps) {
				role := models.RoleAdmin
				isAdmin := true
				want := models.UserUpdate{ID: "u1", Role: &role, IsAdmin: &isAdmin}
				promoted := plainUser
				promoted.Role, promoted.IsAdmin = models.RoleAdmin, true
				d.users.EXPECT().UpdateUser(gomock.Any(), adminUser, want).Return(promoted, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "role mismatch",
			body: `{"role":"admin","is_admin":false}`,
			setup: func(d testDeps) {
				d.users.EXPECT().UpdateUser(gomock.Any(), adminUser, gomock.Any()).Return(models.User{}, service.ErrRoleMismatch)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgRoleMismatch,
		},
		{
			name: "self deactivation",
			body: `{"is_active":false}`,
			setup: func(d testDeps) {
				d.users.EXPECT().UpdateUser(gomock.Any(), adminUser, gomock.Any()).Return(models.User{}, service.ErrSelfDeactivation)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   app.MsgSelfDeactivation,
		},
		{
			name: "duplicate email",
			body: `{"email":"root@example.com"}`,
			setup: func(d testDeps) {
				d.users.EXPECT().UpdateUser(gomock.Any(), adminUser, gomock.Any()).Return(models.User{}, service.ErrUserAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantBody:   app.MsgUserAlreadyExists,
		},
		{
			name:       "invalid json",
			body:       `[`,
			setup:      func(d testDeps) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t, config.Server{})
			expectAdmin(d)
			tt.setup(d)

			rr := doRequest(d.router, http.MethodPut, "/api/users/u1", tt.body, adminHeaders)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody+"\n", rr.Body.String())
			}
		})
	}
}

// ── deactivate ───────────────────────────────────────────────────────────────

func TestDeactivateUser(t *testing.T) {
	t.Run("deactivated", func(t *testing.T) {
		d := newTestDeps(t, config.Server{})
		expectAdmin(d)
		inactive := plainUser
		inactive.IsActive = false
		d.users.EXPECT().DeactivateUser(gomock.Any(), adminUser, "u1").Return(inactive, nil)

		rr := doRequest(d.router, http.MethodPatch, "/api/users/u1/deactivate", "", adminHeaders)

		require.Equal(t, http.StatusOK, rr.Code)
		var got models.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.False(t, got.IsActive)
	})

	t.Run("self", func(t *testing.T) {
		d := newTestDeps(t, config.Server{})
		expectAdmin(d)
		d.users.EXPECT().DeactivateUser(gomock.Any(), adminUser, adminUser.ID).Return(models.User{}, service.ErrSelfDeactivation)

		rr := doRequest(d.router, http.MethodPatch, "/api/users/"+adminUser.ID+"/deactivate", "", adminHeaders)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, app.MsgSelfDeactivation+"\n", rr.Body.String())
	})
}

// ── credential recovery ──────────────────────────────────────────────────────

func TestGenerateResetToken(t *testing.T) {
	d := newTestDeps(t, config.Server{})
	expectAdmin(d)

	expires := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	d.users.EXPECT().GenerateResetToken(gomock.Any(), "u1").Return(models.ResetToken{Token: "abc123", ExpiresAt: expires}, nil)

	rr := doRequest(d.router, http.MethodPost, "/api/users/u1/reset-token", "", adminHeaders)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var got models.ResetToken
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "abc123", got.Token)
	assert.True(t, expires.Equal(got.ExpiresAt))
}

func TestSetPassword(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "stored", body: `{"password":"secret1"}`, wantStatus: http.StatusNoContent},
		{name: "too short", body: `{"password":"abc"}`, err: service.ErrPasswordTooShort, wantStatus: http.StatusBadRequest, wantBody: app.MsgPasswordTooShort},
		{name: "unknown user", body: `{"password":"secret1"}`, err: service.ErrUserNotFound, wantStatus: http.StatusNotFound, wantBody: app.MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t, config.Server{})
			expectAdmin(d)

			var req models.SetPasswordRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			d.users.EXPECT().SetPassword(gomock.Any(), "u1", req).Return(tt.err)

			rr := doRequest(d.router, http.MethodPut, "/api/users/u1/password", tt.body, adminHeaders)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody+"\n", rr.Body.String())
			} else {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}

func TestUsers_UnsupportedMethodIs404(t *testing.T) {
	d := newTestDeps(t, config.Server{})
	expectAdmin(d)

	rr := doRequest(d.router, http.MethodDelete, "/api/users/u1", "", adminHeaders)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
