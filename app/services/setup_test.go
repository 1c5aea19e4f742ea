package services

import (
	"context"
	"testing"

	"bloghouse/app/auth"
	"bloghouse/app/models"
	"bloghouse/app/repositories/mock"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

type testEnv struct {
	store    *mock.Store
	users    *UserService
	posts    *PostService
	comments *CommentService
	admin    *models.User
	member   *models.User
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := mock.NewStore()
	env := &testEnv{
		store:    store,
		users:    NewUserService(store.Users()),
		posts:    NewPostService(store.Posts(), store.Comments(), store.Users()),
		comments: NewCommentService(store.Comments(), store.Posts()),
	}

	ctx := context.Background()
	var err error
	env.admin, err = env.users.Register(ctx, models.RegisterForm{Name: "Admin User", Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)
	env.member, err = env.users.Register(ctx, models.RegisterForm{Name: "Member User", Email: "member@example.com", Password: "member-pass"})
	require.NoError(t, err)
	return env
}

func postForm(title string) models.PostForm {
	return models.PostForm{
		Title:    title,
		Subtitle: "About " + title,
		Body:     "<p>" + title + "</p>",
		ImgURL:   "https://example.com/" + title + ".png",
	}
}
