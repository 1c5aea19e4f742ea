package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bloghouse/app/middleware"
	"bloghouse/app/repositories"
	"bloghouse/app/services"
	"bloghouse/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

// Base carries what every controller needs to answer a request.
type Base struct {
	views  *views.Renderer
	logger *zap.Logger
}

// NewBase creates the shared response helpers.
func NewBase(renderer *views.Renderer, logger *zap.Logger) Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Base{views: renderer, logger: logger}
}

// render fills in the current identity and writes page.
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, page string, data *views.Page) {
	if data == nil {
		data = &views.Page{}
	}
	if user, ok := middleware.CurrentUser(r); ok {
		data.CurrentUser = user
	}
	if err := b.views.Render(w, r, status, page, data); err != nil {
		b.logger.Error("template error", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Forbidden answers authenticated users who lack the admin role.
func (b *Base) Forbidden(w http.ResponseWriter, r *http.Request) {
	b.sendError(w, r, "You are not allowed to do that.", http.StatusForbidden)
}

// NotFound answers requests for unknown routes.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.sendError(w, r, "Page not found", http.StatusNotFound)
}

func (b *Base) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (b *Base) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPI(r) {
		b.sendJSON(w, status, map[string]string{"error": message})
		return
	}
	b.render(w, r, status, views.PageError, &views.Page{Title: message})
}

// fail maps a service or store error onto a response.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errInvalidID):
		b.sendError(w, r, "Invalid ID", http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		b.sendError(w, r, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		b.Forbidden(w, r)
	case errors.Is(err, services.ErrUnauthenticated):
		redirectWith(w, r, "/login", "error", "Please log in to continue.")
	default:
		b.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		b.sendError(w, r, "Something went wrong. Please try again later.", http.StatusInternalServerError)
	}
}

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" ||
		r.Header.Get("Accept") == "application/json"
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// redirectWith sends the client to path carrying a one-shot message in the query.
func redirectWith(w http.ResponseWriter, r *http.Request, path, key, message string) {
	target := path
	if message != "" {
		target += "?" + url.Values{key: {message}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// flash copies query-string messages onto the page.
func flash(r *http.Request, page *views.Page) *views.Page {
	q := r.URL.Query()
	page.Message = q.Get("message")
	page.Error = q.Get("error")
	return page
}

func validationMessages(err error) ([]string, bool) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Messages, true
	}
	return nil, false
}
