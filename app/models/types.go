package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Role is the permission level of a user account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is a registered account. Password always holds a bcrypt hash.
type User struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name" validate:"required,max=250"`
	Email    string `db:"email" json:"email" validate:"required,email,max=250"`
	Password string `db:"password" json:"-" validate:"required"`
	Role     Role   `db:"role" json:"role" validate:"required,oneof=admin member"`
}

// Post represents a blog post with comments.
type Post struct {
	ID         int        `db:"id" json:"id"`
	Title      string     `db:"title" json:"title" validate:"required,max=250"`
	Subtitle   string     `db:"subtitle" json:"subtitle" validate:"required,max=250"`
	Date       string     `db:"date" json:"date" validate:"required,max=250"`
	Body       string     `db:"body" json:"body" validate:"required"`
	ImgURL     string     `db:"img_url" json:"img_url" validate:"required,url,max=250"`
	AuthorID   int        `db:"author_id" json:"author_id" validate:"required,gt=0"`
	AuthorName string     `db:"author_name" json:"author_name,omitempty" validate:"-"`
	Comments   []*Comment `db:"-" json:"comments,omitempty" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID          int    `db:"id" json:"id"`
	Text        string `db:"text" json:"text" validate:"required,max=5000"`
	AuthorID    int    `db:"author_id" json:"author_id" validate:"required,gt=0"`
	PostID      int    `db:"post_id" json:"post_id" validate:"required,gt=0"`
	AuthorName  string `db:"author_name" json:"author_name,omitempty" validate:"-"`
	AuthorEmail string `db:"author_email" json:"-" validate:"-"`
}
