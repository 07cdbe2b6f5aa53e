package entity

import "errors"

var (
	// ErrRecordNotResolved нет ни назначения процесса, ни recordId
	ErrRecordNotResolved = errors.New("record id could not be resolved")
	// ErrMissingProperty не задано обязательное свойство
	ErrMissingProperty = errors.New("required property is missing")
	// ErrFormNotFound определение формы не найдено
	ErrFormNotFound = errors.New("form definition not found")
	// ErrElementNotFound поле загрузки файла отсутствует в форме
	ErrElementNotFound = errors.New("form element not found")
	// ErrFileNotFound загруженный файл не найден в хранилище
	ErrFileNotFound = errors.New("uploaded file not found")
	// ErrHostBinding сервис хост-платформы недоступен
	ErrHostBinding = errors.New("host service is not bound")
	// ErrEmptyVocabulary словарь меток пуст
	ErrEmptyVocabulary = errors.New("label vocabulary is empty")
	// ErrLabelOutOfRange индекс оценки вне словаря
	ErrLabelOutOfRange = errors.New("best score index is outside the label vocabulary")
	// ErrEngineDisabled движок не включён тегом сборки
	ErrEngineDisabled = errors.New("classifier engine is not enabled in this build")
)
