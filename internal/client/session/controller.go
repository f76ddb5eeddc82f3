package session

import (
	"context"
	"sync"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/models"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/services"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/logging"
	"github.com/google/uuid"
)

// Controller is the single writer of the session State.
//
// It starts loading and restores the session in the background; every
// operation calls the AuthService and writes the state only when the call
// succeeds. Writes are applied in completion order, so when calls overlap the
// last one to finish decides the state.
type Controller struct {
	svc    services.AuthService
	logger logging.Logger

	mu          sync.Mutex
	state       State
	subscribers map[string]chan State

	ready chan struct{}
}

// NewController returns a controller in the loading state and starts
// restoring the stored session. ctx bounds the restore only.
func NewController(ctx context.Context, svc services.AuthService, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Controller{
		svc:         svc,
		logger:      logger.With("component", "session"),
		state:       State{IsLoading: true},
		subscribers: make(map[string]chan State),
		ready:       make(chan struct{}),
	}
	go c.bootstrap(ctx)
	return c
}

func (c *Controller) bootstrap(ctx context.Context) {
	defer close(c.ready)

	user, restored, err := c.loadStoredUser(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err != nil:
		c.logger.Error(ctx, "restore session failed", "error", err)
	case restored:
		c.state.User = user
	}
	c.state.IsLoading = false
	c.publishLocked()

	c.logger.Debug(ctx, "session restored", "authenticated", c.state.IsAuthenticated())
}

// loadStoredUser reports restored=true when a token is stored; user may
// still be nil if the profile is missing.
func (c *Controller) loadStoredUser(ctx context.Context) (*models.UserProfile, bool, error) {
	ok, err := c.svc.IsAuthenticated(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	user, err := c.svc.GetCurrentProfile(ctx)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Ready is closed once the stored session has been restored (or failed to).
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// WaitReady blocks until Ready is closed or ctx is done.
func (c *Controller) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) IsAuthenticated() bool {
	return c.State().IsAuthenticated()
}

func (c *Controller) IsLoading() bool {
	return c.State().IsLoading
}

// User returns a copy of the current user, or nil.
func (c *Controller) User() *models.UserProfile {
	return c.State().User
}

// Subscribe returns a channel that receives the current state right away and
// then every change. Only the newest undelivered snapshot is kept, so a slow
// reader skips intermediate states. The returned func unsubscribes and closes
// the channel; it is safe to call more than once.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	id := uuid.NewString()

	c.mu.Lock()
	c.subscribers[id] = ch
	ch <- c.state.clone()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subscribers, id)
			close(ch)
		})
	}
}

// publishLocked hands a snapshot to every subscriber, replacing any snapshot
// it has not read yet. c.mu must be held.
func (c *Controller) publishLocked() {
	for _, ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- c.state.clone()
	}
}

func (c *Controller) setUser(user *models.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.User = user.Clone()
	c.publishLocked()
}

// Login authenticates against the stored account and, on success, makes
// its profile the current user.
func (c *Controller) Login(ctx context.Context, req models.LoginRequest) error {
	sess, err := c.svc.Login(ctx, req)
	if err != nil {
		c.logger.Warn(ctx, "login error", "error", err)
		return err
	}
	c.setUser(&sess.Profile)
	return nil
}

// Signup creates the local account and makes it the current user.
func (c *Controller) Signup(ctx context.Context, req models.SignupRequest) error {
	sess, err := c.svc.Signup(ctx, req)
	if err != nil {
		c.logger.Warn(ctx, "signup error", "error", err)
		return err
	}
	c.setUser(&sess.Profile)
	return nil
}

// Logout ends the session; the state keeps its user if the store fails.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.svc.Logout(ctx); err != nil {
		c.logger.Warn(ctx, "logout error", "error", err)
		return err
	}
	c.setUser(nil)
	return nil
}

// UpdateProfile applies upd and then reloads the profile from the store, so
// the current user is what was actually persisted.
func (c *Controller) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	if err := c.svc.UpdateProfile(ctx, upd); err != nil {
		c.logger.Warn(ctx, "update profile error", "error", err)
		return err
	}
	user, err := c.svc.GetCurrentProfile(ctx)
	if err != nil {
		c.logger.Warn(ctx, "reload profile error", "error", err)
		return err
	}
	c.setUser(user)
	return nil
}

// DeleteAccount removes the token and the profile and clears the user. On a
// partial failure the user is kept even though part of the data may be gone.
func (c *Controller) DeleteAccount(ctx context.Context) error {
	if err := c.svc.DeleteAccount(ctx); err != nil {
		c.logger.Warn(ctx, "delete account error", "error", err)
		return err
	}
	c.setUser(nil)
	return nil
}
