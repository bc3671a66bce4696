package service

import (
	"WikiGo/internal/repo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(repo.NewUserRepository(db))
	ctx := context.Background()

	first, err := s.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.True(t, first.Admin)

	second, err := s.Register(ctx, "bob", "secret2")
	require.NoError(t, err)
	assert.False(t, second.Admin)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(repo.NewUserRepository(db))
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "another")
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(repo.NewUserRepository(db))
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Login)

	_, err = s.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
