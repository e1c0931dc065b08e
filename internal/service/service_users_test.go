// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/mock"
	"github.com/MKhiriev/pos-backoffice/internal/store"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUserSvc(t *testing.T, ctrl *gomock.Controller) (*userService, *mock.MockUserRepository) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)

	svc := NewUserService(repo, bcrypt.MinCost, metrics.Nop(), logger.Nop()).(*userService)
	svc.now = func() time.Time { return fixedNow }

	return svc, repo
}

var adminActor = models.User{ID: "admin-1", Role: models.RoleAdmin, IsAdmin: true, IsActive: true}

// ── UpdateUser ───────────────────────────────────────────────────────────────

func TestUserService_UpdateUser(t *testing.T) {
	plain := models.User{ID: "u1", Role: models.RoleUser, IsAdmin: false, IsActive: true}

	tests := []struct {
		name    string
		update  models.UserUpdate
		setup   func(repo *mock.MockUserRepository)
		wantErr error
	}{
		{
			name:   "promote with both fields",
			update: models.UserUpdate{ID: "u1", Role: ptr(models.RoleAdmin), IsAdmin: ptr(true)},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByID(gomock.Any(), "u1").Return(plain, nil)
				repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(models.User{ID: "u1", Role: models.RoleAdmin, IsAdmin: true}, nil)
			},
		},
		{
			name:   "role only leaves flag disagreeing",
			update: models.UserUpdate{ID: "u1", Role: ptr(models.RoleAdmin)},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByID(gomock.Any(), "u1").Return(plain, nil)
			},
			wantErr: ErrRoleMismatch,
		},
		{
			name:   "explicit disagreement",
			update: models.UserUpdate{ID: "u1", Role: ptr(models.RoleUser), IsAdmin: ptr(true)},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByID(gomock.Any(), "u1").Return(plain, nil)
			},
			wantErr: ErrRoleMismatch,
		},
		{
			name:    "self deactivation",
			update:  models.UserUpdate{ID: adminActor.ID, IsActive: ptr(false)},
			setup:   func(repo *mock.MockUserRepository) {},
			wantErr: ErrSelfDeactivation,
		},
		{
			name:    "empty update",
			update:  models.UserUpdate{ID: "u1"},
			setup:   func(repo *mock.MockUserRepository) {},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:   "unknown user",
			update: models.UserUpdate{ID: "nope", Username: ptr("bob")},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByID(gomock.Any(), "nope").Return(models.User{}, store.ErrNoUserWasFound)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:   "taken username",
			update: models.UserUpdate{ID: "u1", Username: ptr("bob")},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByID(gomock.Any(), "u1").Return(plain, nil)
				repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserAlreadyExists)
			},
			wantErr: ErrUserAlreadyExists,
		},
		{
			name:   "unknown role rejected by storage",
			update: models.UserUpdate{ID: "u1", Email: ptr("u1@example.com")},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByID(gomock.Any(), "u1").Return(plain, nil)
				repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrInvalidRole)
			},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:   "unrelated edit of a record that already disagrees",
			update: models.UserUpdate{ID: "u9", Email: ptr("legacy@example.com")},
			setup: func(repo *mock.MockUserRepository) {
				legacy := models.User{ID: "u9", Role: models.RoleUser, IsAdmin: true, IsActive: true}
				repo.EXPECT().FindUserByID(gomock.Any(), "u9").Return(legacy, nil)
				repo.EXPECT().UpdateUser(gomock.Any(), models.UserUpdate{ID: "u9", Email: ptr("legacy@example.com")}).Return(legacy, nil)
			},
		},
		{
			name:   "touching one role field of a record that already disagrees",
			update: models.UserUpdate{ID: "u9", IsAdmin: ptr(true)},
			setup: func(repo *mock.MockUserRepository) {
				legacy := models.User{ID: "u9", Role: models.RoleUser, IsAdmin: true, IsActive: true}
				repo.EXPECT().FindUserByID(gomock.Any(), "u9").Return(legacy, nil)
			},
			wantErr: ErrRoleMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo := newTestUserSvc(t, ctrl)
			tt.setup(repo)

			_, err := svc.UpdateUser(context.Background(), adminActor, tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserService_UpdateUser_CountsDeactivation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	svc.metrics = collector

	repo.EXPECT().FindUserByID(gomock.Any(), "u1").Return(models.User{ID: "u1", Role: models.RoleUser, IsActive: true}, nil)
	repo.EXPECT().UpdateUser(gomock.Any(), models.UserUpdate{ID: "u1", IsActive: ptr(false)}).
		Return(models.User{ID: "u1", Role: models.RoleUser}, nil)

	_, err := svc.UpdateUser(context.Background(), adminActor, models.UserUpdate{ID: "u1", IsActive: ptr(false)})
	require.NoError(t, err)

	assert.Equal(t, float64(1), counterValue(t, reg, "backoffice_deactivations_total"))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

// ── DeactivateUser ───────────────────────────────────────────────────────────

func TestUserService_DeactivateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.DeactivateUser(ctx, adminActor, adminActor.ID)
	assert.ErrorIs(t, err, ErrSelfDeactivation)

	repo.EXPECT().UpdateUser(ctx, models.UserUpdate{ID: "u1", IsActive: ptr(false)}).
		Return(models.User{ID: "u1", IsActive: false}, nil)
	user, err := svc.DeactivateUser(ctx, adminActor, "u1")
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	repo.EXPECT().UpdateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
	_, err = svc.DeactivateUser(ctx, adminActor, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ── Reset tokens ─────────────────────────────────────────────────────────────

func TestUserService_GenerateResetToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)

	var stored string
	repo.EXPECT().SetResetToken(gomock.Any(), "u1", gomock.Any(), fixedNow.Add(time.Hour)).
		DoAndReturn(func(_ context.Context, _ string, token string, _ time.Time) error {
			stored = token
			return nil
		})

	token, err := svc.GenerateResetToken(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, stored, token.Token)
	assert.Equal(t, fixedNow.Add(time.Hour), token.ExpiresAt)

	raw, err := base64.RawURLEncoding.DecodeString(token.Token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestUserService_GenerateResetToken_FreshValueEachTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)

	repo.EXPECT().SetResetToken(gomock.Any(), "u1", gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := svc.GenerateResetToken(context.Background(), "u1")
	require.NoError(t, err)
	second, err := svc.GenerateResetToken(context.Background(), "u1")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestUserService_GenerateResetToken_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)

	repo.EXPECT().SetResetToken(gomock.Any(), "nope", gomock.Any(), gomock.Any()).Return(store.ErrNoUserWasFound)

	_, err := svc.GenerateResetToken(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ── SetPassword ──────────────────────────────────────────────────────────────

func TestUserService_SetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	err := svc.SetPassword(ctx, "u1", models.SetPasswordRequest{Password: "12345"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	repo.EXPECT().SetPassword(ctx, "u1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, hash string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("123456")))
			return nil
		})
	require.NoError(t, svc.SetPassword(ctx, "u1", models.SetPasswordRequest{Password: "123456"}))

	repo.EXPECT().SetPassword(ctx, "gone", gomock.Any()).Return(store.ErrNoUserWasFound)
	err = svc.SetPassword(ctx, "gone", models.SetPasswordRequest{Password: "123456"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ClearExpiredResetTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)

	repo.EXPECT().ClearExpiredResetTokens(gomock.Any(), fixedNow).Return(int64(3), nil)

	cleared, err := svc.ClearExpiredResetTokens(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), cleared)
}

func TestUserService_ListAndGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().ListUsers(ctx).Return([]models.User{{ID: "u1"}, {ID: "u2"}}, nil)
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	repo.EXPECT().FindUserByID(ctx, "u3").Return(models.User{}, store.ErrNoUserWasFound)
	_, err = svc.GetUser(ctx, "u3")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
