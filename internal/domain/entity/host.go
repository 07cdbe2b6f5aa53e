package entity

import "strconv"

// AppDefinition идентификатор и версия приложения хоста
type AppDefinition struct {
	ID      string `json:"id" yaml:"id"`
	Version int64  `json:"version" yaml:"version"`
}

// VersionString версия в том виде, в каком её ждут сервисы формы
func (a AppDefinition) VersionString() string {
	return strconv.FormatInt(a.Version, 10)
}

// WorkflowAssignment ссылка на активную задачу процесса
type WorkflowAssignment struct {
	ActivityID string `json:"activityId"`
	ProcessID  string `json:"processId"`
}

// Element элемент формы
type Element struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// Form загруженное представление формы для одной записи
type Form struct {
	ID        string    `json:"id"`
	TableName string    `json:"tableName"`
	Elements  []Element `json:"elements"`
}

// FindElement ищет элемент по ID
func (f *Form) FindElement(id string) (Element, bool) {
	for _, el := range f.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// FormRow строка данных формы
type FormRow map[string]string

// ID первичный ключ строки
func (r FormRow) ID() string {
	return r["id"]
}

// SetProperty записывает значение поля
func (r FormRow) SetProperty(name, value string) {
	r[name] = value
}

// Property возвращает значение поля
func (r FormRow) Property(name string) string {
	return r[name]
}

// Clone копия строки
func (r FormRow) Clone() FormRow {
	out := make(FormRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormRowSet набор строк записи
type FormRowSet []FormRow
