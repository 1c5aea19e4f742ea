package services

import (
	"context"
	"fmt"

	"bloghouse/app/models"
	"bloghouse/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment stores a comment by actor on post postID.
func (s *CommentService) CreateComment(ctx context.Context, actor *models.User, postID int, form models.CommentForm) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if err := form.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:        form.Text,
		AuthorID:    actor.ID,
		AuthorName:  actor.Name,
		AuthorEmail: actor.Email,
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	if err := comment.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
