package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/domain/port"
)

// MemoryFormStore in-memory реализация данных форм и переменных процессов
type MemoryFormStore struct {
	mu        sync.RWMutex
	forms     map[string]entity.Form
	rows      map[string]map[string]entity.FormRow // table -> id -> row
	origins   map[string]string                    // process -> origin process
	variables map[string]map[string]string         // activity -> name -> value
}

// NewMemoryFormStore создаёт пустое хранилище
func NewMemoryFormStore() *MemoryFormStore {
	return &MemoryFormStore{
		forms:     make(map[string]entity.Form),
		rows:      make(map[string]map[string]entity.FormRow),
		origins:   make(map[string]string),
		variables: make(map[string]map[string]string),
	}
}

func formKey(appDef entity.AppDefinition, formDefID string) string {
	return appDef.ID + "/" + appDef.VersionString() + "/" + formDefID
}

// PutForm регистрирует определение формы
func (s *MemoryFormStore) PutForm(appDef entity.AppDefinition, form entity.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elements := make([]entity.Element, len(form.Elements))
	copy(elements, form.Elements)
	form.Elements = elements
	s.forms[formKey(appDef, form.ID)] = form
}

// PutRow сохраняет строку в таблицу формы
func (s *MemoryFormStore) PutRow(tableName string, row entity.FormRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putRowLocked(tableName, row)
}

func (s *MemoryFormStore) putRowLocked(tableName string, row entity.FormRow) {
	table, ok := s.rows[tableName]
	if !ok {
		table = make(map[string]entity.FormRow)
		s.rows[tableName] = table
	}
	table[row.ID()] = row.Clone()
}

// Row возвращает копию строки
func (s *MemoryFormStore) Row(tableName, id string) (entity.FormRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[tableName][id]
	if !ok {
		return nil, false
	}
	return row.Clone(), true
}

// StartProcess запускает процесс для записи и возвращает его ID.
// Исходным процессом считается сама запись.
func (s *MemoryFormStore) StartProcess(recordID string) string {
	processID := uuid.NewString()
	s.LinkProcess(processID, recordID)
	return processID
}

// LinkProcess связывает процесс с исходным
func (s *MemoryFormStore) LinkProcess(processID, originID string) {
	s.mu.Lock()
	s.origins[processID] = originID
	s.mu.Unlock()
}

// Variables возвращает копию переменных активности
func (s *MemoryFormStore) Variables(activityID string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.variables[activityID]))
	for k, v := range s.variables[activityID] {
		out[k] = v
	}
	return out
}

// OriginProcessID процесс без связи считается исходным сам для себя
func (s *MemoryFormStore) OriginProcessID(ctx context.Context, processID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if origin, ok := s.origins[processID]; ok {
		return origin, nil
	}
	return processID, nil
}

// ViewForm заполняет элементы формы значениями записи
func (s *MemoryFormStore) ViewForm(ctx context.Context, appDef entity.AppDefinition, formDefID, recordID string) (*entity.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.forms[formKey(appDef, formDefID)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", formDefID, entity.ErrFormNotFound)
	}

	form := def
	form.Elements = make([]entity.Element, len(def.Elements))
	row := s.rows[def.TableName][recordID]
	for i, el := range def.Elements {
		if v, ok := row[el.ID]; ok {
			el.Value = v
		}
		form.Elements[i] = el
	}

	return &form, nil
}

// LoadFormData возвращает копии строк, изменения видны только после StoreFormData
func (s *MemoryFormStore) LoadFormData(ctx context.Context, form *entity.Form, recordID string) (entity.FormRowSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[form.TableName][recordID]
	if !ok {
		return entity.FormRowSet{}, nil
	}
	return entity.FormRowSet{row.Clone()}, nil
}

// StoreFormData сохраняет строки в таблицу формы
func (s *MemoryFormStore) StoreFormData(ctx context.Context, appDef entity.AppDefinition, formDefID string, rows entity.FormRowSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.forms[formKey(appDef, formDefID)]
	if !ok {
		return fmt.Errorf("%s: %w", formDefID, entity.ErrFormNotFound)
	}
	for _, row := range rows {
		if row.ID() == "" {
			return fmt.Errorf("store row without id in %s", def.TableName)
		}
		s.putRowLocked(def.TableName, row)
	}
	return nil
}

// ActivityVariable записывает переменную процесса
func (s *MemoryFormStore) ActivityVariable(ctx context.Context, activityID, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vars, ok := s.variables[activityID]
	if !ok {
		vars = make(map[string]string)
		s.variables[activityID] = vars
	}
	vars[name] = value
	return nil
}

// Проверка реализации интерфейсов
var (
	_ port.FormDataService = (*MemoryFormStore)(nil)
	_ port.WorkflowManager = (*MemoryFormStore)(nil)
)
