package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterForm is the payload of the registration page.
type RegisterForm struct {
	Name     string `validate:"required,max=250"`
	Email    string `validate:"required,email,max=250"`
	Password string `validate:"required,min=6,max=72"`
}

// LoginForm is the payload of the login page.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// PostForm is the payload of the new-post and edit-post pages.
// AuthorID is only honoured on edit; zero keeps the current author.
type PostForm struct {
	Title    string `validate:"required,max=250"`
	Subtitle string `validate:"required,max=250"`
	Body     string `validate:"required"`
	ImgURL   string `validate:"required,url,max=250"`
	AuthorID int    `validate:"gte=0"`
}

// CommentForm is the payload of the comment box on a post page.
type CommentForm struct {
	Text string `validate:"required,max=5000"`
}

func (f *RegisterForm) Validate() error { return validateForm(f) }
func (f *LoginForm) Validate() error    { return validateForm(f) }
func (f *PostForm) Validate() error     { return validateForm(f) }
func (f *CommentForm) Validate() error  { return validateForm(f) }

// FormFromPost pre-fills a PostForm for editing.
func FormFromPost(p *Post) PostForm {
	return PostForm{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Body:     p.Body,
		ImgURL:   p.ImgURL,
		AuthorID: p.AuthorID,
	}
}

// FieldErrors is a user-facing list of validation failures.
type FieldErrors []string

func (fe FieldErrors) Error() string {
	return strings.Join(fe, "; ")
}

func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
