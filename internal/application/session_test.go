package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/infrastructure/storage"
)

func TestSessionService_BeginLabelAndCancel(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	s, err := svc.BeginLabel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingRecord, s.State)

	s, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, s.State)
}

func TestSessionService_SetState(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())

	s, err := svc.SetState(context.Background(), 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, s.State)
}
