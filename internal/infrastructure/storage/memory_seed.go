package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"label-image-tool/internal/domain/entity"
)

// Seed начальные данные in-memory хранилища
type Seed struct {
	Forms     []SeedForm        `yaml:"forms"`
	Rows      []SeedRow         `yaml:"rows"`
	Processes map[string]string `yaml:"processes"` // process -> record
}

type SeedForm struct {
	AppDef    entity.AppDefinition `yaml:"appDef"`
	ID        string               `yaml:"id"`
	TableName string               `yaml:"tableName"`
	Elements  []SeedElement        `yaml:"elements"`
}

type SeedElement struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
}

type SeedRow struct {
	Table string            `yaml:"table"`
	Data  map[string]string `yaml:"data"`
}

// LoadSeed заполняет хранилище из YAML. Отсутствующий файл ничего не меняет.
func (s *MemoryFormStore) LoadSeed(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read records seed: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse records seed: %w", err)
	}
	return s.Apply(seed)
}

// Apply проверяет и применяет seed целиком
func (s *MemoryFormStore) Apply(seed Seed) error {
	for i, f := range seed.Forms {
		if f.ID == "" || f.TableName == "" {
			return fmt.Errorf("seed form #%d: id and tableName are required", i)
		}
	}
	for i, r := range seed.Rows {
		if r.Table == "" || entity.FormRow(r.Data).ID() == "" {
			return fmt.Errorf("seed row #%d: table and data.id are required", i)
		}
	}

	for _, f := range seed.Forms {
		elements := make([]entity.Element, 0, len(f.Elements))
		for _, el := range f.Elements {
			elements = append(elements, entity.Element{ID: el.ID, Type: el.Type})
		}
		s.PutForm(f.AppDef, entity.Form{ID: f.ID, TableName: f.TableName, Elements: elements})
	}
	for _, r := range seed.Rows {
		s.PutRow(r.Table, entity.FormRow(r.Data))
	}
	for processID, recordID := range seed.Processes {
		s.LinkProcess(processID, recordID)
	}
	return nil
}
