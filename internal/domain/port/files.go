package port

import (
	"context"

	"label-image-tool/internal/domain/entity"
)

// FileStore интерфейс хранилища загруженных файлов
type FileStore interface {
	// Read возвращает содержимое файла, загруженного в поле формы записи
	Read(ctx context.Context, form *entity.Form, recordID, fileName string) ([]byte, error)
}
