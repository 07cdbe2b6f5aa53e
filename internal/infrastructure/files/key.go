// Package files читает файлы, загруженные в поля форм.
package files

import (
	"fmt"
	"path"
	"strings"

	"label-image-tool/internal/domain/entity"
)

// uploadKey путь файла: <таблица>/<запись>/<имя файла>
func uploadKey(form *entity.Form, recordID, fileName string) (string, error) {
	parts := []string{form.TableName, recordID, fileName}
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("empty upload path segment: %w", entity.ErrFileNotFound)
		}
		if strings.Contains(p, "..") || strings.ContainsAny(p, `/\`) {
			return "", fmt.Errorf("invalid upload path segment %q", p)
		}
	}
	return path.Join(parts...), nil
}
