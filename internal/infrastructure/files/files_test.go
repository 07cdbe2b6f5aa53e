package files

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"label-image-tool/internal/domain/entity"
)

var testForm = &entity.Form{ID: "F1", TableName: "inspection"}

func TestLocalStore_Read(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "inspection", "R1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.jpg"), []byte("jpeg"), 0o644))

	s := NewLocalStore(root)
	data, err := s.Read(context.Background(), testForm, "R1", "cat.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), data)
}

func TestLocalStore_MissingFile(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Read(context.Background(), testForm, "R1", "cat.jpg")
	require.ErrorIs(t, err, entity.ErrFileNotFound)
}

func TestUploadKey_RejectsTraversal(t *testing.T) {
	key, err := uploadKey(testForm, "R1", "cat.jpg")
	require.NoError(t, err)
	require.Equal(t, "inspection/R1/cat.jpg", key)

	_, err = uploadKey(testForm, "..", "cat.jpg")
	require.Error(t, err)

	_, err = uploadKey(testForm, "R1", "a/b.jpg")
	require.Error(t, err)

	_, err = uploadKey(testForm, "R1", "")
	require.ErrorIs(t, err, entity.ErrFileNotFound)
}

func TestNewAzureStore_InvalidConnectionString(t *testing.T) {
	_, err := NewAzureStore("not-a-connection-string", "formuploads", slog.Default())
	require.Error(t, err)
}
