package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bloghouse/app/models"
	"bloghouse/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreatePost validates the form, stamps today's date and stores the post
// with actor as author. Only administrators may publish.
func (s *PostService) CreatePost(ctx context.Context, actor *models.User, form models.PostForm) (*models.Post, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, newValidationError(err)
	}
	if err := s.checkTitle(ctx, form.Title, 0); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		AuthorID: actor.ID,
	}
	post.BeforeCreate(s.now())
	if err := post.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrTitleTaken
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	post.AuthorName = actor.Name
	return post, nil
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, c := range comments {
		if err := post.AddComment(c); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// ListPosts retrieves every post with its author's name
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// UpdatePost overwrites the mutable fields of post id. A zero AuthorID
// in the form keeps the current author.
func (s *PostService) UpdatePost(ctx context.Context, actor *models.User, id int, form models.PostForm) (*models.Post, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, newValidationError(err)
	}
	if err := s.checkTitle(ctx, form.Title, id); err != nil {
		return nil, err
	}

	if form.AuthorID != 0 && form.AuthorID != post.AuthorID {
		author, err := s.userRepo.GetByID(ctx, form.AuthorID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ValidationError{Messages: []string{"Author does not exist"}}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load author: %w", err)
		}
		post.AuthorID = author.ID
		post.AuthorName = author.Name
	}
	post.Title = form.Title
	post.Subtitle = form.Subtitle
	post.Body = form.Body
	post.ImgURL = form.ImgURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, id int) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

func (s *PostService) checkTitle(ctx context.Context, title string, excludeID int) error {
	taken, err := s.postRepo.ExistsByTitle(ctx, title, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check title: %w", err)
	}
	if taken {
		return ErrTitleTaken
	}
	return nil
}

func requireAdmin(actor *models.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
