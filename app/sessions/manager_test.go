package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestManagerLoginLookupLogout(t *testing.T) {
	store := setupTestStore(t)
	m := NewManager(store, false)

	w := httptest.NewRecorder()
	sess, err := m.Login(w, httptest.NewRequest("POST", "/login", nil), 5)
	require.NoError(t, err)

	cookie := responseCookie(t, w)
	assert.Equal(t, sess.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	got, err := m.Lookup(req)
	require.NoError(t, err)
	assert.Equal(t, 5, got.UserID)

	w = httptest.NewRecorder()
	require.NoError(t, m.Logout(w, req))
	assert.Equal(t, "", responseCookie(t, w).Value)

	_, err = m.Lookup(req)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerLookupAnonymous(t *testing.T) {
	m := NewManager(setupTestStore(t), false)
	_, err := m.Lookup(httptest.NewRequest("GET", "/", nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerLoginReplacesPreviousSession(t *testing.T) {
	store := setupTestStore(t)
	m := NewManager(store, false)

	w := httptest.NewRecorder()
	_, err := m.Login(w, httptest.NewRequest("POST", "/login", nil), 1)
	require.NoError(t, err)
	first := responseCookie(t, w)

	req := httptest.NewRequest("POST", "/login", nil)
	req.AddCookie(first)
	w = httptest.NewRecorder()
	_, err = m.Login(w, req, 2)
	require.NoError(t, err)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
