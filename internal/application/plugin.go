package app

import (
	_ "embed"
	"strings"

	"label-image-tool/internal/domain/entity"
)

const (
	ClassName         = "org.joget.ai.LabelImageTool"
	pluginName        = "AI Label Image Tool"
	pluginVersion     = "6.0.0"
	pluginDescription = "AI Label Image Tool"
	pluginLabel       = "AI Label Image Tool"
)

//go:embed properties/labelImageTool.json
var propertyOptionsTemplate string

func (t *LabelImageTool) Name() string { return pluginName }
func (t *LabelImageTool) Version() string { return pluginVersion }
func (t *LabelImageTool) Description() string { return pluginDescription }
func (t *LabelImageTool) Label() string { return pluginLabel }
func (t *LabelImageTool) ClassName() string { return ClassName }

// PropertyOptions описание свойств для UI настройки плагина.
// {0} и {1} заменяются на ID и версию приложения.
func (t *LabelImageTool) PropertyOptions(appDef entity.AppDefinition) string {
	return strings.NewReplacer(
		"{0}", appDef.ID,
		"{1}", appDef.VersionString(),
	).Replace(propertyOptionsTemplate)
}
