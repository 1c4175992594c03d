package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jkantola/smalltalk/internal/repositories"
	"github.com/jkantola/smalltalk/internal/seed"
	"github.com/stretchr/testify/require"
)

func TestAttackTargetRepository(t *testing.T) {
	dbs := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewAttackTargetRepository(dbs, logger)
	ctx := context.Background()

	// Built-ins plus own imports, not another user's.
	targets, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	targets, err = repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, targets, 1)

	// A batch with an empty description applies nothing.
	err = repo.CreateBatch(ctx, 2, []string{"Your desk's worst-kept secret.", "  "})
	require.ErrorIs(t, err, repositories.ErrInvalidTarget)
	targets, err = repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, targets, 1)

	err = repo.CreateBatch(ctx, 2, []string{"Your desk's worst-kept secret."})
	require.NoError(t, err)
	targets, err = repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	// Seeding twice leaves one copy of each built-in.
	require.NoError(t, repo.EnsureSeed(ctx, seed.AttackTargets()))
	require.NoError(t, repo.EnsureSeed(ctx, seed.AttackTargets()))
	targets, err = repo.List(ctx, 2)
	require.NoError(t, err)
	// One fixture built-in overlaps with the seed pool.
	require.Len(t, targets, len(seed.AttackTargets())+1)
}
