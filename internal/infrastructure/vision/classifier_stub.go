//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/domain/port"
)

type DNNClassifier struct {
	InputName  string
	OutputName string
	InputSide  int
	Mean       float64
	Scale      float64
}

// NewDNNClassifier создаёт классификатор-заглушку (без OpenCV).
func NewDNNClassifier() *DNNClassifier {
	return &DNNClassifier{
		InputName:  "input",
		OutputName: "output",
		InputSide:  224,
		Mean:       117,
		Scale:      1,
	}
}

// Classify возвращает ошибку, если сборка без тега gocv.
func (c *DNNClassifier) Classify(ctx context.Context, graph, imageData []byte) ([]float32, error) {
	_ = ctx
	_ = graph
	_ = imageData
	return nil, fmt.Errorf("gocv: %w", entity.ErrEngineDisabled)
}

var _ port.Classifier = (*DNNClassifier)(nil)
