package routes

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"bloghouse/app/auth"
	"bloghouse/app/repositories"
	"bloghouse/app/sessions"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

type testApp struct {
	server   *httptest.Server
	repo     *repositories.Repository
	sessions *sessions.BadgerStore
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	repo, err := repositories.NewRepository("")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	store, err := sessions.OpenBadgerStore("", time.Hour, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	router, err := SetupRoutes(Deps{
		Users:    repo.Users,
		Posts:    repo.Posts,
		Comments: repo.Comments,
		Sessions: sessions.NewManager(store, false),
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testApp{server: server, repo: repo, sessions: store}
}

// browser is a cookie-keeping client that does not follow redirects.
type browser struct {
	t      *testing.T
	app    *testApp
	client *http.Client
}

type response struct {
	status   int
	location string
	header   http.Header
	body     string
}

func (a *testApp) newBrowser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:   t,
		app: a,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.app.server.URL+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, values url.Values) response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.app.server.URL+path, strings.NewReader(values.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) do(req *http.Request) response {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return response{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		header:   resp.Header,
		body:     string(body),
	}
}

func (b *browser) register(name, email, password string) response {
	b.t.Helper()
	return b.post("/register", url.Values{"name": {name}, "email": {email}, "password": {password}})
}

func (b *browser) login(email, password string) response {
	b.t.Helper()
	return b.post("/login", url.Values{"email": {email}, "password": {password}})
}

func (b *browser) createPost(title string) response {
	b.t.Helper()
	return b.post("/new-post", url.Values{
		"title":    {title},
		"subtitle": {"About " + title},
		"body":     {"<p>" + title + " body</p>"},
		"img_url":  {"https://example.com/" + url.PathEscape(title) + ".png"},
	})
}

func (a *testApp) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, a.repo.DB.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

// signedIn registers and logs in an admin and a member.
func (a *testApp) signedIn(t *testing.T) (admin, member *browser) {
	t.Helper()
	admin = a.newBrowser(t)
	require.Equal(t, http.StatusSeeOther, admin.register("Admin User", "admin@example.com", "admin-pass").status)
	require.Equal(t, http.StatusSeeOther, admin.login("admin@example.com", "admin-pass").status)

	member = a.newBrowser(t)
	require.Equal(t, http.StatusSeeOther, member.register("Ada Lovelace", "ada@example.com", "ada-pass").status)
	require.Equal(t, http.StatusSeeOther, member.login("ada@example.com", "ada-pass").status)
	return admin, member
}
