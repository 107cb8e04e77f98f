package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type ManagerConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager binds a Store to the session cookie.
type Manager struct {
	store  Store
	name   string
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, cfg ManagerConfig) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "sid"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Manager{store: store, name: cfg.CookieName, ttl: cfg.TTL, secure: cfg.Secure}
}

func (m *Manager) CookieName() string {
	return m.name
}

// Load resolves the request cookie. A missing or expired session yields an empty id and a fresh
// Session; only store failures are returned as errors.
func (m *Manager) Load(r *http.Request) (string, *Session, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return "", &Session{}, nil
	}

	s, err := m.store.Get(r.Context(), cookie.Value)
	if errors.Is(err, ErrNotFound) {
		return "", &Session{}, nil
	}
	if err != nil {
		return "", nil, err
	}
	return cookie.Value, s, nil
}

// Save writes s under id (a new id when empty), refreshes the cookie and returns the id used.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, id string, s *Session) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := m.store.Set(ctx, id, s, m.ttl); err != nil {
		return "", err
	}
	m.setCookie(w, id, int(m.ttl/time.Second))
	return id, nil
}

// Rotate moves s to a fresh id and drops the old one. Used right after login.
func (m *Manager) Rotate(ctx context.Context, w http.ResponseWriter, oldID string, s *Session) (string, error) {
	if oldID != "" {
		if err := m.store.Destroy(ctx, oldID); err != nil {
			return "", err
		}
	}
	return m.Save(ctx, w, "", s)
}

func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, id string) error {
	if id != "" {
		if err := m.store.Destroy(ctx, id); err != nil {
			return err
		}
	}
	m.setCookie(w, "", -1)
	return nil
}

func (m *Manager) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
