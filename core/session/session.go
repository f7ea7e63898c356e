// Package session owns the client-held token and profile.
// Manager is the only place reading or writing them.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/auth"
	"github.com/Rodert/learn-hub/core/nav"
)

// Persisted keys
const (
	TokenKey = "token"
	UserKey  = "user"
)

var (
	ErrNoSession     = errors.New("no session stored")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrInvalidClaims = errors.New("token carries no readable claims")
)

type (
	Session struct {
		Token string       `json:"token"`
		User  auth.Profile `json:"user"`
	}

	Store interface {
		// Load returns ErrNoSession when nothing is stored.
		Load(ctx context.Context) (Session, error)
		Save(ctx context.Context, s Session) error
		Clear(ctx context.Context) error
	}

	Authenticator interface {
		Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	}

	// Claims are the token claims shown by `whoami`. They are read without verifying the signature.
	Claims struct {
		Subject   string
		Username  string
		IssuedAt  time.Time
		ExpiresAt time.Time
	}

	Manager struct {
		store  Store
		auth   Authenticator
		nav    core.Navigator
		logger core.Logger

		mu      sync.RWMutex
		current Session
	}
)

func (s Session) Valid() bool {
	return s.Token != ""
}

func NewManager(store Store, authn Authenticator, navigator core.Navigator, logger core.Logger) *Manager {
	if navigator == nil {
		navigator = core.NavigateFunc(func(string) {})
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Manager{store: store, auth: authn, nav: navigator, logger: logger}
}

// SetNavigator replaces the navigator used after login & logout.
func (m *Manager) SetNavigator(navigator core.Navigator) {
	m.mu.Lock()
	m.nav = navigator
	m.mu.Unlock()
}

// Init reads the persisted session, if any.
func (m *Manager) Init(ctx context.Context) error {
	s, err := m.store.Load(ctx)
	if err != nil {
		if errors.Cause(err) == ErrNoSession {
			m.set(Session{})
			return nil
		}
		return errors.Wrap(err, "loading session")
	}
	m.set(s)
	return nil
}

// Set persists s and makes it current.
func (m *Manager) Set(ctx context.Context, s Session) error {
	if err := m.store.Save(ctx, s); err != nil {
		return errors.Wrap(err, "saving session")
	}
	m.set(s)
	return nil
}

// Clear forgets the current session.
func (m *Manager) Clear(ctx context.Context) error {
	m.set(Session{})
	return errors.Wrap(m.store.Clear(ctx), "clearing session")
}

func (m *Manager) set(s Session) {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
}

func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token is the token source of the API client.
func (m *Manager) Token() string {
	return m.Current().Token
}

func (m *Manager) Profile() auth.Profile {
	return m.Current().User
}

func (m *Manager) Authenticated() bool {
	return m.Current().Valid()
}

// Login authenticates, stores the session and lands on the default page.
// Nothing is stored when authentication fails.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	resp, err := m.auth.Login(ctx, auth.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	if err := m.Set(ctx, Session{Token: resp.Token, User: resp.User}); err != nil {
		return err
	}
	m.logger.Info("logged in", resp.User.Username)
	m.navigator().Navigate(nav.DefaultRoute)
	return nil
}

// Logout clears the session and goes back to the login page.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.Clear(ctx); err != nil {
		return err
	}
	m.navigator().Navigate(nav.LoginRoute)
	return nil
}

// Guard returns the route to render for route: the login page when route is protected and there is no session.
func (m *Manager) Guard(route string) (string, bool) {
	if nav.IsProtected(route) && !m.Authenticated() {
		return nav.LoginRoute, false
	}
	return route, true
}

// Claims decodes the current token without verifying it.
func (m *Manager) Claims() (Claims, error) {
	token := m.Token()
	if token == "" {
		return Claims{}, ErrNotLoggedIn
	}
	mc := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, mc); err != nil {
		return Claims{}, errors.Wrap(ErrInvalidClaims, err.Error())
	}

	var c Claims
	if sub, ok := mc["sub"].(string); ok {
		c.Subject = sub
	}
	if uname, ok := mc["username"].(string); ok {
		c.Username = uname
	}
	if iat, ok := mc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return c, nil
}

// Expired reports whether the claims carry an expiry in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

func (m *Manager) navigator() core.Navigator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nav
}
