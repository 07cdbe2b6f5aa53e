package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"label-image-tool/internal/domain/entity"
)

func TestMemorySessionRepository_GetCreatesAndSaves(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, s.State)

	s.SetState(entity.StateAwaitingRecord)
	require.NoError(t, repo.Save(ctx, s))

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingRecord, again.State)
}
