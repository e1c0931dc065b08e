// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/store"
	"github.com/MKhiriev/pos-backoffice/internal/utils"
	"github.com/MKhiriev/pos-backoffice/internal/validators"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and the JWT lifecycle
// using a UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator checks request models before they reach storage.
	validator validators.Validator

	// ids issues identifiers for new accounts.
	ids IDGenerator

	// hashCost is the bcrypt cost used for new password hashes.
	hashCost int

	// dummyHash is compared against when the identifier matches no account,
	// so both failure paths cost one bcrypt comparison.
	dummyHash []byte

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	metrics metrics.Recorder
	logger  *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, ids IDGenerator, recorder metrics.Recorder, logger *logger.Logger) AuthService {
	cost := cfg.PasswordHashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	// the error is impossible for a fixed short input and a valid cost
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("pos-backoffice"), cost)

	return &authService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		ids:            ids,
		hashCost:       cost,
		dummyHash:      dummyHash,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		metrics:        recorder,
		logger:         logger,
	}
}

// Register creates a self-registered account with the user role.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided / ErrPasswordTooShort for bad input.
//   - ErrUserAlreadyExists if the username or email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("username", req.Username).Msg("invalid registration data")
		return models.User{}, validationError(err)
	}

	user, err := a.createUser(ctx, req.Username, req.Email, req.Password, models.RoleUser)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, err
	}

	a.metrics.RecordRegistration()
	log.Info().Str("user_id", user.ID).Msg("user registered")

	return user, nil
}

// Login authenticates an account by username or email.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if the identifier or password is empty.
//   - ErrInvalidCredentials if no account matches or the password is wrong.
//   - ErrAccountInactive if the password is right but the account is deactivated.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		a.metrics.RecordLogin(metrics.LoginFailed)
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(req.Password))
			a.metrics.RecordLogin(metrics.LoginInvalidCredentials)
			log.Info().Str("identifier", req.Identifier).Msg("login with unknown identifier")
			return models.User{}, ErrInvalidCredentials
		}
		a.metrics.RecordLogin(metrics.LoginFailed)
		log.Err(err).Str("identifier", req.Identifier).Msg("user search by identifier failed")
		return models.User{}, fmt.Errorf("user search by identifier failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		a.metrics.RecordLogin(metrics.LoginInvalidCredentials)
		log.Info().Str("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		a.metrics.RecordLogin(metrics.LoginAccountInactive)
		log.Info().Str("user_id", user.ID).Msg("login to inactive account")
		return models.User{}, ErrAccountInactive
	}

	a.metrics.RecordLogin(metrics.LoginSucceeded)

	return user, nil
}

// CurrentUser resolves the account behind a validated token.
func (a *authService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, ErrNoUserID
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// the account behind a valid token is gone
			return models.User{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
		}
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if !user.IsActive {
		return models.User{}, ErrAccountInactive
	}

	return user, nil
}

func (a *authService) BootstrapAdmin(ctx context.Context, admin config.BootstrapAdmin) (models.User, error) {
	log := logger.FromContext(ctx)

	for _, identifier := range []string{admin.Username, admin.Email} {
		existing, err := a.userRepository.FindUserByIdentifier(ctx, identifier)
		if err == nil {
			log.Info().Str("user_id", existing.ID).Msg("bootstrap admin already exists")
			return existing, nil
		}
		if !errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("bootstrap admin lookup failed: %w", err)
		}
	}

	req := models.RegisterRequest{Username: admin.Username, Email: admin.Email, Password: admin.Password}
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	user, err := a.createUser(ctx, admin.Username, admin.Email, admin.Password, models.RoleAdmin)
	if err != nil {
		return models.User{}, fmt.Errorf("bootstrap admin creation failed: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("bootstrap admin created")

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Expired tokens are reported as ErrTokenIsExpired, every other validation
// failure as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) createUser(ctx context.Context, username, email, password string, role models.Role) (models.User, error) {
	hash, err := hashPassword(password, a.hashCost)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.ids.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsAdmin:      role == models.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	return user, nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// validationError folds a validators error into the service taxonomy.
func validationError(err error) error {
	if errors.Is(err, validators.ErrPasswordTooShort) {
		return fmt.Errorf("%w: %w", ErrPasswordTooShort, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

// mapStoreError folds repository errors into the service taxonomy while
// keeping the original in the chain.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, store.ErrUserAlreadyExists):
		return fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
	case errors.Is(err, store.ErrInvalidRole):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	case errors.Is(err, store.ErrNothingToUpdate):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return err
}
