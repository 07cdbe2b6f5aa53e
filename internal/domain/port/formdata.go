package port

import (
	"context"

	"label-image-tool/internal/domain/entity"
)

// FormDataService интерфейс сервиса данных форм хоста
type FormDataService interface {
	// OriginProcessID возвращает ID исходного процесса, он же ID записи
	OriginProcessID(ctx context.Context, processID string) (string, error)

	// ViewForm загружает представление формы для записи
	ViewForm(ctx context.Context, appDef entity.AppDefinition, formDefID, recordID string) (*entity.Form, error)

	// LoadFormData перечитывает строки записи
	LoadFormData(ctx context.Context, form *entity.Form, recordID string) (entity.FormRowSet, error)

	// StoreFormData сохраняет строки обратно
	StoreFormData(ctx context.Context, appDef entity.AppDefinition, formDefID string, rows entity.FormRowSet) error
}
