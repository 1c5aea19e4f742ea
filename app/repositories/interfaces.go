package repositories

import (
	"context"

	"bloghouse/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Register inserts a new user. The first account ever stored is
	// given the admin role regardless of the role requested.
	Register(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	SetRole(ctx context.Context, id int, role models.Role) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	// ExistsByTitle reports whether another post (id != excludeID) uses title.
	ExistsByTitle(ctx context.Context, title string, excludeID int) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and every comment attached to it.
	Delete(ctx context.Context, id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
}
