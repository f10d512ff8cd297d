package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/gateway"
)

// AuthAPI is the slice of the commerce API the session needs.
type AuthAPI interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.AuthToken, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// RegisterInput mirrors the gateway registration payload so the
// manager does not depend on the gateway package directly.
type RegisterInput = gateway.RegisterInput

// Listener is notified after every identity change. user is nil when
// the session became unauthenticated. Identity changes are the sole
// trigger for cart synchronization.
type Listener func(ctx context.Context, user *domain.User)

// Manager holds the current authenticated identity for the process.
// One instance lives for the whole process lifetime.
type Manager struct {
	api   AuthAPI
	store TokenStore
	log   *slog.Logger

	mu        sync.RWMutex
	user      *domain.User
	ready     bool
	listeners []Listener
}

func NewManager(api AuthAPI, store TokenStore, log *slog.Logger) *Manager {
	return &Manager{
		api:   api,
		store: store,
		log:   log,
	}
}

// OnIdentityChange registers a listener. Registration happens during
// wiring, before Restore runs; there is no unsubscribe.
func (m *Manager) OnIdentityChange(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Restore runs once at process start. A present token must either
// resolve to an identity or be purged; a broken credential never
// persists silently. With no token the session is immediately ready
// and unauthenticated.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		m.setIdentity(ctx, nil)
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		m.setIdentity(ctx, nil)
		return nil
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn("session restore failed, purging token", "error", err)
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Error("failed to purge token", "error", clearErr)
		}
		m.setIdentity(ctx, nil)
		return fmt.Errorf("restore session: %w", err)
	}

	m.log.Info("session restored", "user_id", user.ID, "role", user.Role)
	m.setIdentity(ctx, user)
	return nil
}

// Login exchanges credentials for a token, persists it and resolves
// the identity. On any failure the previous identity stays untouched
// and no token is left behind.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := m.store.Save(token.AccessToken); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Error("failed to purge token", "error", clearErr)
		}
		return fmt.Errorf("resolve identity: %w", err)
	}

	m.log.Info("login succeeded", "user_id", user.ID)
	m.setIdentity(ctx, user)
	return nil
}

// Register creates the account and then logs in with the same
// credentials; registration has no independent session effect.
func (m *Manager) Register(ctx context.Context, in RegisterInput) error {
	if _, err := m.api.Register(ctx, in); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return m.Login(ctx, in.Email, in.Password)
}

// Logout purges the token and clears the identity synchronously; no
// network call is awaited.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Error("failed to purge token on logout", "error", err)
	}
	m.setIdentity(context.Background(), nil)
	m.log.Info("logged out")
}

func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *Manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// Ready reports whether the startup restore has settled. Protected
// content must not render before this is true.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

func (m *Manager) setIdentity(ctx context.Context, user *domain.User) {
	m.mu.Lock()
	m.user = user
	m.ready = true
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	// Listeners run outside the lock; they are allowed to read the
	// manager.
	for _, fn := range listeners {
		fn(ctx, user)
	}
}
