package files

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/domain/port"
)

// AzureStore файлы загрузок в контейнере Azure Blob Storage
type AzureStore struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// NewAzureStore создаёт клиент, но не обращается к сервису до первого чтения.
func NewAzureStore(connectionString, container string, logger *slog.Logger) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &AzureStore{
		client:    client,
		container: container,
		logger:    logger.With("system", "files"),
	}, nil
}

func (s *AzureStore) Read(ctx context.Context, form *entity.Form, recordID, fileName string) ([]byte, error) {
	key, err := uploadKey(form, recordID, fileName)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("%s: %w", key, entity.ErrFileNotFound)
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}

	s.logger.Debug("upload downloaded", "key", key, "bytes", len(data))
	return data, nil
}

var _ port.FileStore = (*AzureStore)(nil)
