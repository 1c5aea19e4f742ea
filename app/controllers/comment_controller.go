package controllers

import (
	"net/http"
	"strconv"

	"bloghouse/app/middleware"
	"bloghouse/app/models"
	"bloghouse/app/services"
	"bloghouse/app/views"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	Base
	commentService *services.CommentService
	postService    *services.PostService
}

// NewCommentController creates a new CommentController
func NewCommentController(base Base, commentService *services.CommentService, postService *services.PostService) *CommentController {
	return &CommentController{Base: base, commentService: commentService, postService: postService}
}

// Create stores a comment from the current user and sends them back to the post.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		cc.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		cc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}

	user, ok := middleware.CurrentUser(r)
	if !ok {
		redirectWith(w, r, "/login", "error", "You need to log in to comment!")
		return
	}

	form := models.CommentForm{Text: r.PostFormValue("text")}
	_, err = cc.commentService.CreateComment(r.Context(), user, id, form)
	if msgs, invalid := validationMessages(err); invalid {
		post, perr := cc.postService.GetPost(r.Context(), id)
		if perr != nil {
			cc.fail(w, r, perr)
			return
		}
		page := &views.Page{Title: post.Title, Post: post, FormErrors: msgs}
		cc.render(w, r, http.StatusUnprocessableEntity, views.PagePost, page)
		return
	}
	if err != nil {
		cc.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}
