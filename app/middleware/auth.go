package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"bloghouse/app/models"
	"bloghouse/app/repositories"
	"bloghouse/app/sessions"

	"go.uber.org/zap"
)

type contextKey int

const userKey contextKey = iota

// UserLookup resolves a session's user id to an account.
type UserLookup interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// WithUser returns a copy of ctx carrying user as the current identity.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the identity bound to the request, if any.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok && user != nil
}

// LoadSession resolves the session cookie to a user and stores it on the
// request context. Anonymous requests pass through untouched; cookies
// pointing at dead sessions or deleted users are cleared.
func LoadSession(manager *sessions.Manager, users UserLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Lookup(r)
			switch {
			case errors.Is(err, sessions.ErrNoSession):
				next.ServeHTTP(w, r)
				return
			case errors.Is(err, sessions.ErrSessionNotFound), errors.Is(err, sessions.ErrSessionExpired):
				manager.Clear(w)
				next.ServeHTTP(w, r)
				return
			case err != nil:
				logger.Error("session lookup failed", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), sess.UserID)
			if err != nil {
				if !errors.Is(err, repositories.ErrNotFound) {
					logger.Error("session user lookup failed", zap.Int("user_id", sess.UserID), zap.Error(err))
				}
				manager.Clear(w)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// Gate guards routes by identity. Forbidden renders the response sent to
// authenticated users without the admin role.
type Gate struct {
	Forbidden http.Handler
}

// RequireAuth redirects anonymous visitors to the login page.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			redirectToLogin(w, r, "Please log in to continue.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly lets administrators through. Anonymous visitors are sent to
// log in; other users get a 403 and the handler never runs.
func (g *Gate) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r)
		if !ok {
			redirectToLogin(w, r, "Please log in as an administrator.")
			return
		}
		if !user.IsAdmin() {
			if g.Forbidden != nil {
				g.Forbidden.ServeHTTP(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(message), http.StatusSeeOther)
}
