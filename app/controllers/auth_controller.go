package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"bloghouse/app/models"
	"bloghouse/app/services"
	"bloghouse/app/sessions"
	"bloghouse/app/views"

	"go.uber.org/zap"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	Base
	userService *services.UserService
	sessions    *sessions.Manager
}

// NewAuthController creates a new AuthController
func NewAuthController(base Base, userService *services.UserService, manager *sessions.Manager) *AuthController {
	return &AuthController{Base: base, userService: userService, sessions: manager}
}

// Register shows the sign-up form and creates accounts.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	page := flash(r, &views.Page{Title: "Register"})
	if r.Method != http.MethodPost {
		ac.render(w, r, http.StatusOK, views.PageRegister, page)
		return
	}

	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := models.RegisterForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, err := ac.userService.Register(r.Context(), form)
	if errors.Is(err, services.ErrEmailTaken) {
		redirectWith(w, r, "/login", "message", "Your email is already registered. Please log in!")
		return
	}
	if msgs, ok := validationMessages(err); ok {
		page.Name, page.Email, page.FormErrors = form.Name, form.Email, msgs
		ac.render(w, r, http.StatusUnprocessableEntity, views.PageRegister, page)
		return
	}
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	ac.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("role", string(user.Role)))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Login shows the login form and starts sessions.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	page := flash(r, &views.Page{Title: "Log In"})
	if r.Method != http.MethodPost {
		ac.render(w, r, http.StatusOK, views.PageLogin, page)
		return
	}

	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := models.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	page.Email = form.Email

	user, err := ac.userService.Authenticate(r.Context(), form)
	switch {
	case errors.Is(err, services.ErrUnknownEmail):
		redirectWith(w, r, "/register", "error", "This email does not exist in our database. Please sign up!")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		page.Error = fmt.Sprintf("Wrong credentials %s. Please check your password!", user.FirstName())
		ac.render(w, r, http.StatusOK, views.PageLogin, page)
		return
	}
	if msgs, ok := validationMessages(err); ok {
		page.FormErrors = msgs
		ac.render(w, r, http.StatusUnprocessableEntity, views.PageLogin, page)
		return
	}
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	if _, err := ac.sessions.Login(w, r, user.ID); err != nil {
		ac.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the current session.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.sessions.Logout(w, r); err != nil {
		ac.logger.Warn("failed to delete session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
