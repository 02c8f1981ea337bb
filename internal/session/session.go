// Package session owns the authenticated user and bearer token for the
// lifetime of the process.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/logger"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
)

// ErrNotAuthenticated is returned by operations that need a logged-in user
var ErrNotAuthenticated = errors.New(constants.MsgNotAuthenticated)

type State int

const (
	StateInitializing State = iota
	StateAuthenticating
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticating:
		return "authenticating"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// TokenStore persists the bearer token between runs
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Authenticator is the subset of services.AuthService the controller drives
type Authenticator interface {
	Login(ctx context.Context, email, password string) (services.LoginResult, error)
	Register(ctx context.Context, in services.RegisterInput) (models.User, error)
	CurrentUser(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
	UpdateAccount(ctx context.Context, in services.AccountInput) (models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (models.User, error)
}

// AuthError carries a user-facing message for a failed auth operation
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// RegisterResult reports whether registration was followed by a successful login
type RegisterResult struct {
	User         models.User
	AutoLoggedIn bool
}

// Controller holds the session. The user is only ever set together with a
// non-empty token.
type Controller struct {
	auth  Authenticator
	store TokenStore

	mu    sync.RWMutex
	user  *models.User
	token string
	state State
}

func New(auth Authenticator, store TokenStore) *Controller {
	return &Controller{auth: auth, store: store, state: StateInitializing}
}

// Token returns the current bearer token, or "" when anonymous
func (c *Controller) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns a copy of the current user
func (c *Controller) User() (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return models.User{}, false
	}
	return *c.user, true
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil && c.token != ""
}

// RequireAuth returns ErrNotAuthenticated for anonymous sessions
func (c *Controller) RequireAuth() error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (c *Controller) set(user *models.User, token string, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
	c.token = token
	c.state = state
}

func (c *Controller) setState(state State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.state
	c.state = state
	return prev
}

// Init restores a persisted session. Any failure to resolve the stored token
// discards it and leaves the session anonymous.
func (c *Controller) Init(ctx context.Context) error {
	token, err := c.store.Load()
	if err != nil {
		logger.Warn("Failed to read stored token", "error", err)
	}
	if token == "" {
		c.set(nil, "", StateReady)
		return nil
	}

	c.set(nil, token, StateInitializing)
	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		logger.Warn("Stored session is no longer valid", "error", err)
		if clearErr := c.store.Clear(); clearErr != nil {
			logger.Warn("Failed to clear stored token", "error", clearErr)
		}
		c.set(nil, "", StateReady)
		return nil
	}

	c.set(&user, token, StateReady)
	logger.Debug("Session restored", "user", user.ID)
	return nil
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	prev := c.setState(StateAuthenticating)

	res, err := c.auth.Login(ctx, email, password)
	if err != nil {
		c.setState(prev)
		return loginError(err)
	}

	user := res.User
	if user.ID == "" {
		// Token-only response: resolve the profile with the new token.
		c.mu.Lock()
		c.token = res.Token
		c.mu.Unlock()
		if current, err := c.auth.CurrentUser(ctx); err == nil {
			user = current
		} else {
			logger.Warn("Failed to fetch profile after login", "error", err)
			user.Email = email
		}
	}

	if err := c.store.Save(res.Token); err != nil {
		logger.Warn("Failed to persist token", "error", err)
	}
	c.set(&user, res.Token, StateReady)
	logger.Info("Logged in", "user", user.ID)
	return nil
}

// loginError maps backend failures to the fixed login messages
func loginError(err error) error {
	msg := api.Message(err)
	switch {
	case strings.Contains(msg, "User Not Exists") || strings.Contains(strings.ToLower(msg), "not exist"):
		return &AuthError{Message: constants.MsgUserNotExists, Err: err}
	case strings.Contains(msg, "Invalid") || strings.Contains(msg, "Credentials"):
		return &AuthError{Message: constants.MsgInvalidLogin, Err: err}
	case api.IsNetwork(err):
		return &AuthError{Message: constants.MsgNetworkError, Err: err}
	case msg == "":
		return &AuthError{Message: constants.MsgFallbackError, Err: err}
	default:
		return &AuthError{Message: msg, Err: err}
	}
}

func serverError(err error) error {
	if api.IsNetwork(err) {
		return &AuthError{Message: constants.MsgNetworkError, Err: err}
	}
	msg := api.Message(err)
	if msg == "" {
		msg = constants.MsgFallbackError
	}
	return &AuthError{Message: msg, Err: err}
}

// Register creates the account and then logs in with the same credentials.
// A failed follow-up login still counts as a successful registration.
func (c *Controller) Register(ctx context.Context, in services.RegisterInput) (RegisterResult, error) {
	user, err := c.auth.Register(ctx, in)
	if err != nil {
		return RegisterResult{}, serverError(err)
	}

	if err := c.Login(ctx, in.Email, in.Password); err != nil {
		logger.Warn("Automatic login after registration failed", "error", err)
		return RegisterResult{User: user}, nil
	}
	current, _ := c.User()
	return RegisterResult{User: current, AutoLoggedIn: true}, nil
}

// Logout always ends the local session. The backend call is best effort.
func (c *Controller) Logout(ctx context.Context) error {
	if c.Token() != "" {
		if err := c.auth.Logout(ctx); err != nil {
			logger.Warn("Backend logout failed", "error", err)
		}
	}
	c.set(nil, "", StateReady)
	if err := c.store.Clear(); err != nil {
		logger.Warn("Failed to clear stored token", "error", err)
	}
	return nil
}

// Refresh re-reads the current user, e.g. after XP-changing actions
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.RequireAuth(); err != nil {
		return err
	}
	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		return serverError(err)
	}
	c.replaceUser(user)
	return nil
}

func (c *Controller) UpdateAccount(ctx context.Context, in services.AccountInput) error {
	if err := c.RequireAuth(); err != nil {
		return err
	}
	user, err := c.auth.UpdateAccount(ctx, in)
	if err != nil {
		return serverError(err)
	}
	c.adopt(ctx, user)
	return nil
}

func (c *Controller) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := c.RequireAuth(); err != nil {
		return err
	}
	user, err := c.auth.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		return serverError(err)
	}
	c.adopt(ctx, user)
	return nil
}

// adopt replaces the user with a mutation's response. Responses without a
// user object trigger a profile re-read instead.
func (c *Controller) adopt(ctx context.Context, user models.User) {
	if user.ID != "" {
		c.replaceUser(user)
		return
	}
	if err := c.Refresh(ctx); err != nil {
		logger.Warn("Failed to refresh profile", "error", err)
	}
}

func (c *Controller) replaceUser(user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return
	}
	c.user = &user
}
