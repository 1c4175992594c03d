package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jkantola/smalltalk/internal/repositories"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	dbs := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewUserRepository(dbs, logger)
	ctx := context.Background()

	id, err := repo.Register(ctx, "tuulikki", "correct horse battery staple")
	require.NoError(t, err)
	require.Positive(t, id)

	// The stored hash never equals the plaintext.
	user, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, []byte("correct horse battery staple"), user.PasswordHash)

	// Duplicate usernames are rejected.
	_, err = repo.Register(ctx, "tuulikki", "another password")
	require.ErrorIs(t, err, repositories.ErrUsernameTaken)

	// Authentication round-trips.
	gotID, err := repo.Authenticate(ctx, "tuulikki", "correct horse battery staple")
	require.NoError(t, err)
	require.Equal(t, id, gotID)

	// Wrong password and unknown user fail identically.
	_, err = repo.Authenticate(ctx, "tuulikki", "wrong")
	require.ErrorIs(t, err, repositories.ErrInvalidCredentials)
	_, err = repo.Authenticate(ctx, "nobody", "wrong")
	require.ErrorIs(t, err, repositories.ErrInvalidCredentials)

	exists, err := repo.Exists(ctx, id)
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = repo.Exists(ctx, 9999)
	require.NoError(t, err)
	require.False(t, exists)
}
