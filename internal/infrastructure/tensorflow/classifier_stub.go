//go:build !tensorflow
// +build !tensorflow

// Package tensorflow классифицирует изображения через TensorFlow C API (graft).
package tensorflow

import (
	"context"
	"fmt"

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/domain/port"
)

type GraphClassifier struct {
	InputOp   string
	OutputOp  string
	InputSide int32
	Mean      float32
	Scale     float32
}

// NewGraphClassifier создаёт классификатор-заглушку (без TensorFlow).
func NewGraphClassifier() *GraphClassifier {
	return &GraphClassifier{
		InputOp:   "input",
		OutputOp:  "output",
		InputSide: 224,
		Mean:      117,
		Scale:     1,
	}
}

// Classify возвращает ошибку, если сборка без тега tensorflow.
func (c *GraphClassifier) Classify(ctx context.Context, graph, imageData []byte) ([]float32, error) {
	_ = ctx
	_ = graph
	_ = imageData
	return nil, fmt.Errorf("tensorflow: %w", entity.ErrEngineDisabled)
}

var _ port.Classifier = (*GraphClassifier)(nil)
