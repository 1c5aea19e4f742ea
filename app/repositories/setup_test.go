package repositories

import (
	"context"
	"testing"

	"bloghouse/app/models"

	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository("")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createTestUser(t *testing.T, repo *Repository, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "$2a$10$notarealhash", Role: models.RoleMember}
	require.NoError(t, repo.Users.Register(context.Background(), user))
	return user
}

func createTestPost(t *testing.T, repo *Repository, authorID int, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Subtitle: "subtitle of " + title,
		Date:     "May 01, 2024",
		Body:     "<p>body</p>",
		ImgURL:   "https://example.com/img.png",
		AuthorID: authorID,
	}
	require.NoError(t, repo.Posts.Create(context.Background(), post))
	return post
}

func countRows(t *testing.T, repo *Repository, table string) int {
	t.Helper()
	var n int
	require.NoError(t, repo.DB.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
