package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bloghouse/app/middleware"
	"bloghouse/app/models"
	"bloghouse/app/services"
	"bloghouse/app/views"

	"go.uber.org/zap"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	Base
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(base Base, postService *services.PostService) *PostController {
	return &PostController{Base: base, postService: postService}
}

// Show displays a post with its comments and the comment form.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, r, http.StatusOK, views.PagePost, flash(r, &views.Page{Title: post.Title, Post: post}))
}

// New displays the form for creating a post and publishes it.
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	page := &views.Page{Title: "New Post", Heading: "New Post", Action: "/new-post"}
	if r.Method != http.MethodPost {
		pc.render(w, r, http.StatusOK, views.PageMakePost, page)
		return
	}

	form, err := parsePostForm(r)
	if err != nil {
		pc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	page.PostForm = form

	user, _ := middleware.CurrentUser(r)
	post, err := pc.postService.CreatePost(r.Context(), user, form)
	if pc.formFailed(w, r, page, err) {
		return
	}

	pc.logger.Info("post created", zap.Int("post_id", post.ID), zap.Int("author_id", post.AuthorID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Edit displays a pre-filled form and overwrites the post.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	action := "/edit-post/" + strconv.Itoa(id)
	page := &views.Page{Title: "Edit Post", Heading: "Edit Post", Action: action, Post: post}
	if r.Method != http.MethodPost {
		page.PostForm = models.FormFromPost(post)
		pc.render(w, r, http.StatusOK, views.PageMakePost, page)
		return
	}

	form, err := parsePostForm(r)
	if err != nil {
		pc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	page.PostForm = form

	user, _ := middleware.CurrentUser(r)
	if _, err := pc.postService.UpdatePost(r.Context(), user, id, form); pc.formFailed(w, r, page, err) {
		return
	}
	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// Delete removes a post together with its comments.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	user, _ := middleware.CurrentUser(r)
	if err := pc.postService.DeletePost(r.Context(), user, id); err != nil {
		pc.fail(w, r, err)
		return
	}

	pc.logger.Info("post deleted", zap.Int("post_id", id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// APIIndex lists posts as JSON.
func (pc *PostController) APIIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	pc.sendJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// APIShow returns one post and its comments as JSON.
func (pc *PostController) APIShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// formFailed renders form errors on the make-post page and reports whether
// the request has been answered.
func (pc *PostController) formFailed(w http.ResponseWriter, r *http.Request, page *views.Page, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, services.ErrTitleTaken) {
		page.Error = "A post with this title already exists."
		pc.render(w, r, http.StatusUnprocessableEntity, views.PageMakePost, page)
		return true
	}
	if msgs, ok := validationMessages(err); ok {
		page.FormErrors = msgs
		pc.render(w, r, http.StatusUnprocessableEntity, views.PageMakePost, page)
		return true
	}
	pc.fail(w, r, err)
	return true
}

func parsePostForm(r *http.Request) (models.PostForm, error) {
	if err := r.ParseForm(); err != nil {
		return models.PostForm{}, err
	}
	form := models.PostForm{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Subtitle: strings.TrimSpace(r.PostFormValue("subtitle")),
		Body:     r.PostFormValue("body"),
		ImgURL:   strings.TrimSpace(r.PostFormValue("img_url")),
	}
	if raw := strings.TrimSpace(r.PostFormValue("author_id")); raw != "" {
		authorID, err := strconv.Atoi(raw)
		if err != nil {
			authorID = -1
		}
		form.AuthorID = authorID
	}
	return form, nil
}
