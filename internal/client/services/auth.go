// Package services contains application services for the Smart-Desk client.
// This file defines the authentication service: signup, login, logout,
// session probing and housekeeping of the single persisted user profile.
package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/models"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/storage"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/common"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/logging"
	"github.com/google/uuid"
)

// AuthService defines the session operations of the client.
//
// Contract:
//   - Signup: create the (single) local account and open a session. Apart
//     from storage failures, the only error is common.ErrInvalidWorkMode for
//     a work mode outside remote, hybrid and office; nothing is written then.
//   - Login: check the password against the stored account and open a session.
//   - Logout: drop the session token; the profile stays.
//   - IsAuthenticated: report whether a session token is stored.
//   - GetCurrentProfile: read the stored profile, nil if there is none.
//   - UpdateProfile: merge a partial update into the stored profile.
//   - DeleteAccount: drop both the token and the profile.
//
// Errors wrap common.ErrStorageFailure, common.ErrNoAccount,
// common.ErrInvalidCredentials or common.ErrInvalidWorkMode; match them with
// errors.Is. Nothing is retried.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.Session, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	GetCurrentProfile(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
	DeleteAccount(ctx context.Context) error
}

// authService is the concrete AuthService backed by a storage.Store.
// It keeps no state of its own between calls.
type authService struct {
	store    storage.Store
	keys     storage.Keys
	logger   logging.Logger
	newID    func() string
	newToken func() (string, error)
	now      func() time.Time
}

// Option customizes an authService.
type Option func(*authService)

// WithLogger sets the logger; the default discards output.
func WithLogger(l logging.Logger) Option {
	return func(a *authService) { a.logger = l }
}

// WithIDGenerator replaces the profile id generator (UUID v4 by default).
func WithIDGenerator(f func() string) Option {
	return func(a *authService) { a.newID = f }
}

// WithTokenGenerator replaces the session token generator.
func WithTokenGenerator(f func() (string, error)) Option {
	return func(a *authService) { a.newToken = f }
}

// WithClock replaces the time source used for token timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *authService) { a.now = now }
}

// NewAuthService constructs an AuthService persisting under namespace.
func NewAuthService(store storage.Store, namespace string, opts ...Option) AuthService {
	a := &authService{
		store:  store,
		keys:   storage.Keys{Namespace: namespace},
		logger: logging.Nop(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	a.newToken = a.defaultToken
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "auth", "namespace", namespace)
	return a
}

// defaultToken returns "token-<unix millis>-<16 hex chars>". The random part
// keeps two sessions opened within the same millisecond distinct.
func (a *authService) defaultToken() (string, error) {
	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("token-%d-%s", a.now().UnixMilli(), suffix), nil
}

// Signup creates a new profile with a fresh id and opens a session for it.
// There is no uniqueness check: any previously stored profile is replaced.
// An empty work mode defaults to models.DefaultWorkMode.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.Session, error) {
	mode := req.WorkMode
	if mode == "" {
		mode = models.DefaultWorkMode
	}
	if !mode.Valid() {
		return models.Session{}, fmt.Errorf("signup: %w: %q", common.ErrInvalidWorkMode, mode)
	}

	profile := models.UserProfile{
		ID:       a.newID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Company:  req.Company,
		WorkMode: mode,
	}

	token, err := a.openSession(ctx, profile)
	if err != nil {
		a.logger.Error(ctx, "signup failed", "error", err)
		return models.Session{}, fmt.Errorf("signup: %w", err)
	}

	a.logger.Info(ctx, "signup succeeded", "user_id", profile.ID)
	return models.Session{Token: token, Profile: profile}, nil
}

// Login checks req.Password against the stored profile and opens a new
// session. Only the password is compared; the email is not cross-checked.
// RememberMe has no effect on persistence.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	profile, err := a.GetCurrentProfile(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	if profile == nil {
		a.logger.Warn(ctx, "login without a stored account")
		return models.Session{}, fmt.Errorf("login: %w", common.ErrNoAccount)
	}

	if subtle.ConstantTimeCompare([]byte(profile.Password), []byte(req.Password)) != 1 {
		a.logger.Warn(ctx, "login rejected", "user_id", profile.ID)
		return models.Session{}, fmt.Errorf("login: %w", common.ErrInvalidCredentials)
	}

	if !strings.EqualFold(strings.TrimSpace(req.Email), profile.Email) {
		// TODO: decide whether a mismatching email should reject the login; until then it is only reported.
		a.logger.Warn(ctx, "login email differs from stored account", "user_id", profile.ID)
	}

	token, err := a.openSession(ctx, *profile)
	if err != nil {
		a.logger.Error(ctx, "login failed", "error", err)
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	a.logger.Info(ctx, "login succeeded", "user_id", profile.ID, "remember_me", req.RememberMe)
	return models.Session{Token: token, Profile: *profile}, nil
}

// openSession stores a new token and then profile, in that order.
func (a *authService) openSession(ctx context.Context, profile models.UserProfile) (string, error) {
	token, err := a.newToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := a.store.Set(ctx, a.keys.AuthToken(), token); err != nil {
		return "", err
	}
	if err := a.saveProfile(ctx, profile); err != nil {
		return "", err
	}
	return token, nil
}

// Logout removes the session token. The profile stays stored so the user
// can log in again.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Remove(ctx, a.keys.AuthToken()); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	a.logger.Info(ctx, "logout succeeded")
	return nil
}

// IsAuthenticated reports whether a session token is stored, whatever the
// state of the profile.
func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	_, ok, err := a.store.Get(ctx, a.keys.AuthToken())
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return ok, nil
}

// GetCurrentProfile returns the stored profile, or nil when there is none.
// A stored value that does not decode is reported as a storage failure.
func (a *authService) GetCurrentProfile(ctx context.Context) (*models.UserProfile, error) {
	raw, ok, err := a.store.Get(ctx, a.keys.UserData())
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, common.StorageError("decode profile", err)
	}
	return &profile, nil
}

// UpdateProfile merges upd into the stored profile and writes it back.
// The profile id is never changed. An empty update rewrites the profile
// unchanged.
func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	if err := upd.Validate(); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	current, err := a.GetCurrentProfile(ctx)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if current == nil {
		return fmt.Errorf("update profile: %w", common.ErrNoAccount)
	}

	merged := upd.ApplyTo(*current)
	if err := a.saveProfile(ctx, merged); err != nil {
		a.logger.Error(ctx, "update profile failed", "user_id", current.ID, "error", err)
		return fmt.Errorf("update profile: %w", err)
	}

	a.logger.Info(ctx, "profile updated", "user_id", merged.ID)
	return nil
}

// DeleteAccount removes both the token and the profile. Both removals are
// attempted even if the first fails; a failure of either is returned and
// whatever was already removed stays removed.
func (a *authService) DeleteAccount(ctx context.Context) error {
	tokenErr := a.store.Remove(ctx, a.keys.AuthToken())
	profileErr := a.store.Remove(ctx, a.keys.UserData())

	if err := errors.Join(tokenErr, profileErr); err != nil {
		a.logger.Error(ctx, "delete account failed", "token_removed", tokenErr == nil, "profile_removed", profileErr == nil, "error", err)
		return fmt.Errorf("delete account: %w", err)
	}

	a.logger.Info(ctx, "account deleted")
	return nil
}

func (a *authService) saveProfile(ctx context.Context, profile models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return a.store.Set(ctx, a.keys.UserData(), string(data))
}
