package services

import (
	"context"
	"testing"

	"bloghouse/app/auth"
	"bloghouse/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHashesPassword(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, models.RegisterForm{Name: "Ada", Email: "Ada@Example.com", Password: "plaintext-pw"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	stored, err := env.store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext-pw", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "plaintext-pw"))
	assert.Equal(t, 3, env.store.Users().Count())
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	env := setupTestEnv(t)
	assert.True(t, env.admin.IsAdmin())
	assert.Equal(t, 1, env.admin.ID)
	assert.False(t, env.member.IsAdmin())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, models.RegisterForm{Name: "Again", Email: "MEMBER@example.com", Password: "another-pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.users.Register(ctx, models.RegisterForm{Email: "member@example.com", Password: "1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 2, env.store.Users().Count())
}

func TestRegisterInvalidForm(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.users.Register(context.Background(), models.RegisterForm{Email: "bad"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Messages)
	assert.Equal(t, 2, env.store.Users().Count())
}

func TestAuthenticate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	t.Run("correct password", func(t *testing.T) {
		user, err := env.users.Authenticate(ctx, models.LoginForm{Email: "member@example.com", Password: "member-pass"})
		require.NoError(t, err)
		assert.Equal(t, env.member.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.users.Authenticate(ctx, models.LoginForm{Email: "member@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.users.Authenticate(ctx, models.LoginForm{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrUnknownEmail)
	})

	t.Run("store unavailable", func(t *testing.T) {
		env.store.Err = assert.AnError
		defer func() { env.store.Err = nil }()
		_, err := env.users.Authenticate(ctx, models.LoginForm{Email: "member@example.com", Password: "member-pass"})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPromote(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Promote(ctx, "member@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	stored, err := env.store.Users().GetByID(ctx, env.member.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())

	_, err = env.users.Promote(ctx, "ghost@example.com")
	assert.Error(t, err)
}
