package entity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Ключи свойств, которые хост передаёт плагину
const (
	PropWorkflowAssignment           = "workflowAssignment"
	PropRecordID                     = "recordId"
	PropFormDefID                    = "formDefId"
	PropFileUploadID                 = "fileUploadId"
	PropAppDef                       = "appDef"
	PropFormLabelMapping             = "formLabelMapping"
	PropFormProbabilityMapping       = "formProbabilityMapping"
	PropWfVariableLabelMapping       = "wfVariableLabelMapping"
	PropWfVariableProbabilityMapping = "wfVariableProbabilityMapping"
)

// Properties набор свойств одного запуска, как его передал хост
type Properties map[string]any

// String возвращает строковое свойство или пустую строку
func (p Properties) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Assignment разбирает workflowAssignment: значение в процессе или JSON-объект
func (p Properties) Assignment() *WorkflowAssignment {
	switch v := p[PropWorkflowAssignment].(type) {
	case *WorkflowAssignment:
		return v
	case WorkflowAssignment:
		return &v
	case map[string]any:
		a := &WorkflowAssignment{
			ActivityID: stringOf(v["activityId"]),
			ProcessID:  stringOf(v["processId"]),
		}
		if a.ActivityID == "" && a.ProcessID == "" {
			return nil
		}
		return a
	default:
		return nil
	}
}

// AppDef разбирает appDef
func (p Properties) AppDef() *AppDefinition {
	switch v := p[PropAppDef].(type) {
	case *AppDefinition:
		return v
	case AppDefinition:
		return &v
	case map[string]any:
		id := stringOf(v["id"])
		if id == "" {
			return nil
		}
		app := &AppDefinition{ID: id}
		if raw, ok := v["version"]; ok && raw != nil {
			version, err := strconv.ParseInt(stringOf(raw), 10, 64)
			if err != nil {
				// версия не разобрана: appDef считается не заданным
				return nil
			}
			app.Version = version
		}
		return app
	default:
		return nil
	}
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

// FieldMapping пара имён для метки и вероятности
type FieldMapping struct {
	Label       string
	Probability string
}

// Invocation конфигурация одного запуска с необязательными назначениями
type Invocation struct {
	Assignment   *WorkflowAssignment
	RecordID     string
	FormDefID    string
	FileUploadID string
	AppDef       *AppDefinition
	Form         FieldMapping // поля записи
	Variables    FieldMapping // переменные процесса
}

// NewInvocation собирает Invocation из свойств хоста
func NewInvocation(p Properties) Invocation {
	return Invocation{
		Assignment:   p.Assignment(),
		RecordID:     p.String(PropRecordID),
		FormDefID:    p.String(PropFormDefID),
		FileUploadID: p.String(PropFileUploadID),
		AppDef:       p.AppDef(),
		Form: FieldMapping{
			Label:       p.String(PropFormLabelMapping),
			Probability: p.String(PropFormProbabilityMapping),
		},
		Variables: FieldMapping{
			Label:       p.String(PropWfVariableLabelMapping),
			Probability: p.String(PropWfVariableProbabilityMapping),
		},
	}
}

// HasFormMapping запись обновляется только если заданы оба поля
func (i Invocation) HasFormMapping() bool {
	return !isBlank(i.Form.Label) && !isBlank(i.Form.Probability)
}

// WritesLabelVariable переменная метки пишется только при наличии назначения
func (i Invocation) WritesLabelVariable() bool {
	return i.Assignment != nil && !isBlank(i.Variables.Label)
}

// WritesProbabilityVariable то же для вероятности, независимо от метки
func (i Invocation) WritesProbabilityVariable() bool {
	return i.Assignment != nil && !isBlank(i.Variables.Probability)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
