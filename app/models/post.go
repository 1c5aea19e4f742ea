package models

import (
	"errors"
	"time"
)

// DateLayout is how a post's publish date is rendered and stored.
const DateLayout = "January 02, 2006"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate stamps the publish date if none is set.
func (p *Post) BeforeCreate(now time.Time) {
	if p.Date == "" {
		p.Date = now.Format(DateLayout)
	}
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}
