// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/mock"
	"github.com/MKhiriev/pos-backoffice/internal/store"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testAppConfig = config.App{
	TokenSignKey:     "test-sign-key",
	TokenIssuer:      "test-issuer",
	TokenDuration:    time.Hour,
	PasswordHashCost: bcrypt.MinCost,
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockIDGenerator) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)

	svc := NewAuthService(repo, testAppConfig, ids, metrics.Nop(), logger.Nop()).(*authService)
	return svc, repo, ids
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, ids := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	ids.EXPECT().Generate().Return("user-1")
	repo.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "user-1", u.ID)
			assert.Equal(t, models.RoleUser, u.Role)
			assert.False(t, u.IsAdmin)
			assert.True(t, u.IsActive)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
			return u, nil
		})

	user, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "bad", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.NotErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, ids := newTestAuthSvc(t, ctrl)

	ids.EXPECT().Generate().Return("user-1")
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserAlreadyExists)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	hash := mustHash(t, "secret1")

	tests := []struct {
		name     string
		req      models.LoginRequest
		setup    func(repo *mock.MockUserRepository)
		wantErr  error
		wantUser string
	}{
		{
			name: "success by email",
			req:  models.LoginRequest{Identifier: "alice@example.com", Password: "secret1"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByIdentifier(gomock.Any(), "alice@example.com").
					Return(models.User{ID: "u1", PasswordHash: hash, IsActive: true}, nil)
			},
			wantUser: "u1",
		},
		{
			name: "unknown identifier",
			req:  models.LoginRequest{Identifier: "nobody", Password: "secret1"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByIdentifier(gomock.Any(), "nobody").Return(models.User{}, store.ErrNoUserWasFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  models.LoginRequest{Identifier: "alice", Password: "wrong-pass"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByIdentifier(gomock.Any(), "alice").
					Return(models.User{ID: "u1", PasswordHash: hash, IsActive: true}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "inactive account with wrong password is indistinguishable",
			req:  models.LoginRequest{Identifier: "alice", Password: "wrong-pass"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByIdentifier(gomock.Any(), "alice").
					Return(models.User{ID: "u1", PasswordHash: hash, IsActive: false}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "inactive account",
			req:  models.LoginRequest{Identifier: "alice", Password: "secret1"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByIdentifier(gomock.Any(), "alice").
					Return(models.User{ID: "u1", PasswordHash: hash, IsActive: false}, nil)
			},
			wantErr: ErrAccountInactive,
		},
		{
			name:    "empty identifier",
			req:     models.LoginRequest{Password: "secret1"},
			setup:   func(repo *mock.MockUserRepository) {},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name: "storage failure",
			req:  models.LoginRequest{Identifier: "alice", Password: "secret1"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByIdentifier(gomock.Any(), "alice").Return(models.User{}, store.ErrExecutingQuery)
			},
			wantErr: store.ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo, _ := newTestAuthSvc(t, ctrl)
			tt.setup(repo)

			user, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user.ID)
		})
	}
}

// ── CurrentUser ──────────────────────────────────────────────────────────────

func TestAuthService_CurrentUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrNoUserID)

	repo.EXPECT().FindUserByID(ctx, "gone").Return(models.User{}, store.ErrNoUserWasFound)
	_, err = svc.CurrentUser(ctx, "gone")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	repo.EXPECT().FindUserByID(ctx, "off").Return(models.User{ID: "off"}, nil)
	_, err = svc.CurrentUser(ctx, "off")
	assert.ErrorIs(t, err, ErrAccountInactive)

	repo.EXPECT().FindUserByID(ctx, "u1").Return(models.User{ID: "u1", IsActive: true}, nil)
	user, err := svc.CurrentUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

// ── BootstrapAdmin ───────────────────────────────────────────────────────────

func TestAuthService_BootstrapAdmin_CreatesAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, ids := newTestAuthSvc(t, ctrl)
	admin := config.BootstrapAdmin{Username: "root", Email: "root@example.com", Password: "changeme"}

	gomock.InOrder(
		repo.EXPECT().FindUserByIdentifier(gomock.Any(), "root").Return(models.User{}, store.ErrNoUserWasFound),
		repo.EXPECT().FindUserByIdentifier(gomock.Any(), "root@example.com").Return(models.User{}, store.ErrNoUserWasFound),
		ids.EXPECT().Generate().Return("admin-1"),
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, models.RoleAdmin, u.Role)
				assert.True(t, u.IsAdmin)
				return u, nil
			}),
	)

	user, err := svc.BootstrapAdmin(context.Background(), admin)

	require.NoError(t, err)
	assert.True(t, user.RolesConsistent())
	assert.True(t, user.CanAdminister())
}

func TestAuthService_BootstrapAdmin_ExistingAccountUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthSvc(t, ctrl)

	repo.EXPECT().FindUserByIdentifier(gomock.Any(), "root").
		Return(models.User{ID: "existing", Role: models.RoleUser}, nil)

	user, err := svc.BootstrapAdmin(context.Background(), config.BootstrapAdmin{Username: "root", Email: "root@example.com", Password: "changeme"})

	require.NoError(t, err)
	assert.Equal(t, "existing", user.ID)
}

func TestAuthService_BootstrapAdmin_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthSvc(t, ctrl)

	repo.EXPECT().FindUserByIdentifier(gomock.Any(), "root").Return(models.User{}, errors.New("db down"))

	_, err := svc.BootstrapAdmin(context.Background(), config.BootstrapAdmin{Username: "root", Email: "root@example.com", Password: "changeme"})
	assert.Error(t, err)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_CreateAndParseToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: "u1"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserID)
}

func TestAuthService_CreateToken_NoUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.CreateToken(context.Background(), models.User{})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.ParseToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	expired := &authService{tokenSignKey: testAppConfig.TokenSignKey, tokenIssuer: testAppConfig.TokenIssuer, tokenDuration: -time.Minute}
	token, err := expired.CreateToken(ctx, models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)

	other := &authService{tokenSignKey: "other-key", tokenIssuer: testAppConfig.TokenIssuer, tokenDuration: time.Hour}
	token, err = other.CreateToken(ctx, models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
