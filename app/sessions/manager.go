package sessions

import (
	"errors"
	"net/http"
	"time"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_token"

var ErrNoSession = errors.New("no session cookie")

// Manager ties a Store to the session cookie.
type Manager struct {
	store  Store
	secure bool
}

// NewManager creates a Manager. secure marks the cookie HTTPS-only.
func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// Login starts a new session for userID and sets the cookie. Any session
// the browser already held is discarded first.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID int) (*Session, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if err := m.store.Delete(r.Context(), c.Value); err != nil {
			return nil, err
		}
	}

	sess, err := m.store.Create(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// Lookup resolves the request's cookie to a live session.
func (m *Manager) Lookup(r *http.Request) (*Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, ErrNoSession
	}
	return m.store.Get(r.Context(), c.Value)
}

// Logout deletes the stored session and expires the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	var err error
	if c, cerr := r.Cookie(CookieName); cerr == nil {
		err = m.store.Delete(r.Context(), c.Value)
	}
	m.Clear(w)
	return err
}

// Clear expires the session cookie on the client.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
