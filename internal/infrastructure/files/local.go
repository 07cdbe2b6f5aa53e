package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/domain/port"
)

// LocalStore файлы загрузок на локальном диске
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Read(ctx context.Context, form *entity.Form, recordID, fileName string) ([]byte, error) {
	key, err := uploadKey(form, recordID, fileName)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, entity.ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", key, err)
	}
	return data, nil
}

var _ port.FileStore = (*LocalStore)(nil)
