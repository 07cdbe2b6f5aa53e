package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"label-image-tool/internal/domain/entity"
)

// PluginDefaults свойства плагина для запусков без хоста (бот).
// Хост передаёт свой набор свойств и эти значения не использует.
type PluginDefaults struct {
	AppDef                 entity.AppDefinition `yaml:"appDef"`
	FormDefID              string               `yaml:"formDefId"`
	FileUploadID           string               `yaml:"fileUploadId"`
	FormLabelMapping       string               `yaml:"formLabelMapping"`
	FormProbabilityMapping string               `yaml:"formProbabilityMapping"`
}

// LoadPluginDefaults читает YAML. Отсутствующий файл даёт пустые значения.
func LoadPluginDefaults(path string) (*PluginDefaults, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &PluginDefaults{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plugin properties: %w", err)
	}

	var d PluginDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse plugin properties: %w", err)
	}
	return &d, nil
}

// Properties набор свойств для записи recordID
func (d *PluginDefaults) Properties(recordID string) entity.Properties {
	appDef := d.AppDef
	return entity.Properties{
		entity.PropRecordID:               recordID,
		entity.PropAppDef:                 &appDef,
		entity.PropFormDefID:              d.FormDefID,
		entity.PropFileUploadID:           d.FileUploadID,
		entity.PropFormLabelMapping:       d.FormLabelMapping,
		entity.PropFormProbabilityMapping: d.FormProbabilityMapping,
	}
}
