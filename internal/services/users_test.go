package services

import (
	"context"
	"testing"
	"time"

	"devconnect/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *TokenService) {
	t.Helper()
	tokens := NewTokenService("secret", time.Hour)
	return NewUserService(store.NewMemory().Users, tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newUserService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, " Alice ", "Alice@Example.com", "hunter22")
	require.NoError(t, err)
	id, err := tokens.Verify(token)
	require.NoError(t, err)

	user, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password, "password is stored hashed")
	assert.NotEmpty(t, user.Avatar)

	token, err = svc.Login(ctx, "ALICE@example.com", "hunter22")
	require.NoError(t, err)
	got, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "ALICE@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUnknownUser(t *testing.T) {
	svc, _ := newUserService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
