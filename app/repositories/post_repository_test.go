package repositories

import (
	"context"
	"testing"

	"bloghouse/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryCreateAndGet(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "Angela Yu", "admin@example.com")

	post := createTestPost(t, repo, admin.ID, "Hello")
	assert.NotZero(t, post.ID)

	got, err := repo.Posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "Angela Yu", got.AuthorName)

	_, err = repo.Posts.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepositoryConstraints(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "Admin", "admin@example.com")
	createTestPost(t, repo, admin.ID, "Hello")

	t.Run("duplicate title", func(t *testing.T) {
		dup := &models.Post{Title: "Hello", Subtitle: "s", Date: "d", Body: "b", ImgURL: "u", AuthorID: admin.ID}
		assert.ErrorIs(t, repo.Posts.Create(ctx, dup), ErrDuplicate)
		assert.Equal(t, 1, countRows(t, repo, PostsTable))
	})

	t.Run("unknown author", func(t *testing.T) {
		orphan := &models.Post{Title: "Orphan", Subtitle: "s", Date: "d", Body: "b", ImgURL: "u", AuthorID: 42}
		assert.ErrorIs(t, repo.Posts.Create(ctx, orphan), ErrReference)
	})

	t.Run("exists by title", func(t *testing.T) {
		exists, err := repo.Posts.ExistsByTitle(ctx, "Hello", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.Posts.ExistsByTitle(ctx, "Hello", 1)
		require.NoError(t, err)
		assert.False(t, exists, "a post never collides with itself")
	})
}

func TestPostRepositoryList(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	posts, err := repo.Posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	admin := createTestUser(t, repo, "Admin", "admin@example.com")
	createTestPost(t, repo, admin.ID, "First")
	createTestPost(t, repo, admin.ID, "Second")

	posts, err = repo.Posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Second", posts[1].Title)
	assert.Equal(t, "Admin", posts[1].AuthorName)
}

func TestPostRepositoryUpdate(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "Admin", "admin@example.com")
	other := createTestUser(t, repo, "Other", "other@example.com")
	target := createTestPost(t, repo, admin.ID, "Target")
	bystander := createTestPost(t, repo, admin.ID, "Bystander")

	target.Title = "Renamed"
	target.Subtitle = "new subtitle"
	target.Body = "<p>new</p>"
	target.ImgURL = "https://example.com/new.png"
	target.AuthorID = other.ID
	require.NoError(t, repo.Posts.Update(ctx, target))

	got, err := repo.Posts.GetByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "new subtitle", got.Subtitle)
	assert.Equal(t, "Other", got.AuthorName)
	assert.Equal(t, "May 01, 2024", got.Date, "publish date is not editable")

	untouched, err := repo.Posts.GetByID(ctx, bystander.ID)
	require.NoError(t, err)
	assert.Equal(t, bystander.Title, untouched.Title)
	assert.Equal(t, bystander.Subtitle, untouched.Subtitle)

	missing := *target
	missing.ID = 999
	missing.Title = "Ghost"
	assert.ErrorIs(t, repo.Posts.Update(ctx, &missing), ErrNotFound)
}

func TestPostRepositoryDeleteCascades(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "Admin", "admin@example.com")
	doomed := createTestPost(t, repo, admin.ID, "Doomed")
	kept := createTestPost(t, repo, admin.ID, "Kept")

	for _, postID := range []int{doomed.ID, doomed.ID, kept.ID} {
		require.NoError(t, repo.Comments.Create(ctx, &models.Comment{Text: "c", AuthorID: admin.ID, PostID: postID}))
	}

	require.NoError(t, repo.Posts.Delete(ctx, doomed.ID))

	_, err := repo.Posts.GetByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, countRows(t, repo, PostsTable))

	comments, err := repo.Comments.ListByPost(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.Equal(t, 1, countRows(t, repo, CommentsTable))

	assert.ErrorIs(t, repo.Posts.Delete(ctx, doomed.ID), ErrNotFound)
}
