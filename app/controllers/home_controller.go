package controllers

import (
	"net/http"

	"bloghouse/app/services"
	"bloghouse/app/views"
)

// HomeController serves the front page and the static pages.
type HomeController struct {
	Base
	postService *services.PostService
}

// NewHomeController creates a new HomeController
func NewHomeController(base Base, postService *services.PostService) *HomeController {
	return &HomeController{Base: base, postService: postService}
}

// Index lists every post with its author.
func (hc *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := hc.postService.ListPosts(r.Context())
	if err != nil {
		hc.fail(w, r, err)
		return
	}
	hc.render(w, r, http.StatusOK, views.PageIndex, flash(r, &views.Page{Posts: posts}))
}

func (hc *HomeController) About(w http.ResponseWriter, r *http.Request) {
	hc.render(w, r, http.StatusOK, views.PageAbout, &views.Page{Title: "About"})
}

func (hc *HomeController) Contact(w http.ResponseWriter, r *http.Request) {
	hc.render(w, r, http.StatusOK, views.PageContact, &views.Page{Title: "Contact"})
}
