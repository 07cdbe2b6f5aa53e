//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"label-image-tool/internal/domain/port"
)

type DNNClassifier struct {
	InputName  string
	OutputName string
	InputSide  int
	Mean       float64
	Scale      float64
}

// NewDNNClassifier создаёт классификатор с параметрами графа Inception.
func NewDNNClassifier() *DNNClassifier {
	return &DNNClassifier{
		InputName:  "input",
		OutputName: "output",
		InputSide:  224,
		Mean:       117,
		Scale:      1,
	}
}

// Classify загружает граф TensorFlow, нормализует изображение и делает один проход сети.
func (c *DNNClassifier) Classify(ctx context.Context, graph, imageData []byte) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	net, err := gocv.ReadNetFromTensorflowBytes(graph)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	defer net.Close()
	if net.Empty() {
		return nil, errors.New("empty graph")
	}

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	// (pixel - mean) * scale, RGB, 224x224
	blob := gocv.BlobFromImage(mat, c.Scale, image.Pt(c.InputSide, c.InputSide),
		gocv.NewScalar(c.Mean, c.Mean, c.Mean, 0), true, false)
	defer blob.Close()

	net.SetInput(blob, c.InputName)
	prob := net.Forward(c.OutputName)
	defer prob.Close()

	data, err := prob.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}

	// Mat освобождается, поэтому данные копируются.
	scores := make([]float32, len(data))
	copy(scores, data)
	return scores, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

var _ port.Classifier = (*DNNClassifier)(nil)
