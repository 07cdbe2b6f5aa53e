package container

import (
	"log/slog"

	app "label-image-tool/internal/application"
	"label-image-tool/internal/domain/port"
)

type Container struct {
	SessionService *app.SessionService
	LabelImageTool *app.LabelImageTool
}

// Ports адаптеры хост-платформы и модели
type Ports struct {
	Sessions   port.SessionRepository
	Forms      port.FormDataService
	Files      port.FileStore
	Workflow   port.WorkflowManager
	Bundle     port.ModelBundle
	Classifier port.Classifier
}

func New(p Ports, logger *slog.Logger) *Container {
	sessionService := app.NewSessionService(p.Sessions)
	labelImageTool := app.NewLabelImageTool(p.Forms, p.Files, p.Workflow, p.Bundle, p.Classifier, logger)

	return &Container{
		SessionService: sessionService,
		LabelImageTool: labelImageTool,
	}
}
