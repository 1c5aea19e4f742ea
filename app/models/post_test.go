package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPost() *Post {
	return &Post{
		Title:    "Valid Title",
		Subtitle: "A subtitle",
		Date:     "March 03, 2024",
		Body:     "<p>Body</p>",
		ImgURL:   "https://example.com/cover.jpg",
		AuthorID: 1,
	}
}

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantErr bool
	}{
		{name: "valid post", mutate: func(p *Post) {}},
		{name: "empty title", mutate: func(p *Post) { p.Title = "" }, wantErr: true},
		{name: "missing author", mutate: func(p *Post) { p.AuthorID = 0 }, wantErr: true},
		{name: "bad image url", mutate: func(p *Post) { p.ImgURL = "not a url" }, wantErr: true},
		{name: "empty body", mutate: func(p *Post) { p.Body = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPost()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	now := time.Date(2024, time.July, 4, 10, 0, 0, 0, time.UTC)

	t.Run("stamps empty date", func(t *testing.T) {
		p := &Post{}
		p.BeforeCreate(now)
		assert.Equal(t, "July 04, 2024", p.Date)
	})

	t.Run("keeps existing date", func(t *testing.T) {
		p := &Post{Date: "January 01, 2020"}
		p.BeforeCreate(now)
		assert.Equal(t, "January 01, 2020", p.Date)
	})
}

func TestPostAddComment(t *testing.T) {
	post := &Post{ID: 7}

	t.Run("add comment", func(t *testing.T) {
		comment := &Comment{ID: 1, Text: "hi"}
		assert.NoError(t, post.AddComment(comment))
		assert.Len(t, post.Comments, 1)
		assert.Equal(t, 7, comment.PostID)
	})

	t.Run("add nil comment", func(t *testing.T) {
		assert.Error(t, post.AddComment(nil))
	})
}
