package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/domain/port"
)

// LabelImageTool классифицирует изображение из поля формы и пишет результат
// в запись и в переменные процесса.
type LabelImageTool struct {
	forms      port.FormDataService
	files      port.FileStore
	workflow   port.WorkflowManager
	bundle     port.ModelBundle
	classifier port.Classifier
	logger     *slog.Logger
}

// NewLabelImageTool создаёт плагин. Любой сервис может быть nil:
// тогда запуск, которому он нужен, завершится результатом NA.
func NewLabelImageTool(
	forms port.FormDataService,
	files port.FileStore,
	workflow port.WorkflowManager,
	bundle port.ModelBundle,
	classifier port.Classifier,
	logger *slog.Logger,
) *LabelImageTool {
	if logger == nil {
		logger = slog.Default()
	}
	return &LabelImageTool{
		forms:      forms,
		files:      files,
		workflow:   workflow,
		bundle:     bundle,
		classifier: classifier,
		logger:     logger.With("plugin", ClassName),
	}
}

// Execute точка входа для хоста. Ошибки не возвращаются: они логируются,
// а результат сводится к NA / 0.0.
func (t *LabelImageTool) Execute(ctx context.Context, props entity.Properties) {
	t.Run(ctx, entity.NewInvocation(props))
}

// Run выполняет запуск и возвращает итог тем вызывающим, которым он нужен.
func (t *LabelImageTool) Run(ctx context.Context, inv entity.Invocation) entity.ClassificationResult {
	logger := t.logger.With("invocation", uuid.NewString())

	result, err := t.run(ctx, inv, logger)
	if err != nil {
		logger.Error("label image failed", "error", err)
		result = entity.FallbackResult()
	}

	logger.Info(result.Summary(), "label", result.Label, "probability", result.Probability)
	return result
}

// ClassifyImage загружает модель и классифицирует уже прочитанные байты.
func (t *LabelImageTool) ClassifyImage(ctx context.Context, image []byte) (entity.ClassificationResult, error) {
	if t.bundle == nil || t.classifier == nil {
		return entity.FallbackResult(), fmt.Errorf("classifier: %w", entity.ErrHostBinding)
	}

	graph, err := t.bundle.Graph()
	if err != nil {
		return entity.FallbackResult(), fmt.Errorf("load model graph: %w", err)
	}
	labels, err := t.bundle.Labels()
	if err != nil {
		return entity.FallbackResult(), fmt.Errorf("load labels: %w", err)
	}

	scores, err := t.classifier.Classify(ctx, graph, image)
	if err != nil {
		return entity.FallbackResult(), fmt.Errorf("classify image: %w", err)
	}

	return entity.BestMatch(scores, labels)
}

func (t *LabelImageTool) run(ctx context.Context, inv entity.Invocation, logger *slog.Logger) (entity.ClassificationResult, error) {
	if t.forms == nil {
		return entity.FallbackResult(), fmt.Errorf("form data service: %w", entity.ErrHostBinding)
	}
	if inv.AppDef == nil {
		return entity.FallbackResult(), fmt.Errorf("%s: %w", entity.PropAppDef, entity.ErrMissingProperty)
	}

	recordID, err := t.resolveRecordID(ctx, inv)
	if err != nil {
		return entity.FallbackResult(), err
	}

	image, form, err := t.loadImage(ctx, inv, recordID)
	if err != nil {
		return entity.FallbackResult(), err
	}

	result, err := t.ClassifyImage(ctx, image)
	if err != nil {
		return entity.FallbackResult(), err
	}

	if inv.HasFormMapping() {
		if err := t.storeToRecord(ctx, inv, form, recordID, result, logger); err != nil {
			return entity.FallbackResult(), err
		}
	}

	if err := t.storeToWorkflow(ctx, inv, result); err != nil {
		return entity.FallbackResult(), err
	}

	return result, nil
}

// resolveRecordID ID записи берётся из исходного процесса назначения,
// иначе из свойства recordId.
func (t *LabelImageTool) resolveRecordID(ctx context.Context, inv entity.Invocation) (string, error) {
	if inv.Assignment != nil {
		recordID, err := t.forms.OriginProcessID(ctx, inv.Assignment.ProcessID)
		if err != nil {
			return "", fmt.Errorf("origin process of %s: %w", inv.Assignment.ProcessID, err)
		}
		if recordID == "" {
			return "", fmt.Errorf("origin process of %s: %w", inv.Assignment.ProcessID, entity.ErrRecordNotResolved)
		}
		return recordID, nil
	}

	if inv.RecordID == "" {
		return "", entity.ErrRecordNotResolved
	}
	return inv.RecordID, nil
}

func (t *LabelImageTool) loadImage(ctx context.Context, inv entity.Invocation, recordID string) ([]byte, *entity.Form, error) {
	if t.files == nil {
		return nil, nil, fmt.Errorf("file store: %w", entity.ErrHostBinding)
	}

	form, err := t.forms.ViewForm(ctx, *inv.AppDef, inv.FormDefID, recordID)
	if err != nil {
		return nil, nil, fmt.Errorf("view form %s: %w", inv.FormDefID, err)
	}

	el, ok := form.FindElement(inv.FileUploadID)
	if !ok {
		return nil, nil, fmt.Errorf("%s in form %s: %w", inv.FileUploadID, inv.FormDefID, entity.ErrElementNotFound)
	}
	if el.Value == "" {
		return nil, nil, fmt.Errorf("%s of record %s is empty: %w", inv.FileUploadID, recordID, entity.ErrFileNotFound)
	}

	image, err := t.files.Read(ctx, form, recordID, el.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", el.Value, err)
	}

	return image, form, nil
}

func (t *LabelImageTool) storeToRecord(
	ctx context.Context,
	inv entity.Invocation,
	form *entity.Form,
	recordID string,
	result entity.ClassificationResult,
	logger *slog.Logger,
) error {
	rows, err := t.forms.LoadFormData(ctx, form, recordID)
	if err != nil {
		return fmt.Errorf("load record %s: %w", recordID, err)
	}
	if len(rows) == 0 {
		logger.Debug("record has no rows, skipping form mapping", "record", recordID)
		return nil
	}

	row := rows[0]
	row.SetProperty(inv.Form.Label, result.Label)
	row.SetProperty(inv.Form.Probability, result.ProbabilityString())

	if err := t.forms.StoreFormData(ctx, *inv.AppDef, inv.FormDefID, rows); err != nil {
		return fmt.Errorf("store record %s: %w", recordID, err)
	}
	return nil
}

func (t *LabelImageTool) storeToWorkflow(ctx context.Context, inv entity.Invocation, result entity.ClassificationResult) error {
	if !inv.WritesLabelVariable() && !inv.WritesProbabilityVariable() {
		return nil
	}
	if t.workflow == nil {
		return fmt.Errorf("workflow manager: %w", entity.ErrHostBinding)
	}

	activityID := inv.Assignment.ActivityID
	if inv.WritesLabelVariable() {
		if err := t.workflow.ActivityVariable(ctx, activityID, inv.Variables.Label, result.Label); err != nil {
			return fmt.Errorf("set variable %s: %w", inv.Variables.Label, err)
		}
	}
	if inv.WritesProbabilityVariable() {
		if err := t.workflow.ActivityVariable(ctx, activityID, inv.Variables.Probability, result.ProbabilityString()); err != nil {
			return fmt.Errorf("set variable %s: %w", inv.Variables.Probability, err)
		}
	}
	return nil
}
