//go:build tensorflow
// +build tensorflow

// Package tensorflow классифицирует изображения через TensorFlow C API (graft).
package tensorflow

import (
	"context"
	"fmt"

	tf "github.com/wamuir/graft/tensorflow"
	"github.com/wamuir/graft/tensorflow/op"

	"label-image-tool/internal/domain/port"
)

type GraphClassifier struct {
	InputOp   string
	OutputOp  string
	InputSide int32
	Mean      float32
	Scale     float32
}

// NewGraphClassifier создаёт классификатор с параметрами графа Inception.
func NewGraphClassifier() *GraphClassifier {
	return &GraphClassifier{
		InputOp:   "input",
		OutputOp:  "output",
		InputSide: 224,
		Mean:      117,
		Scale:     1,
	}
}

// Classify нормализует изображение отдельным графом и прогоняет его через модель.
func (c *GraphClassifier) Classify(ctx context.Context, graph, imageData []byte) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	image, err := c.normalize(imageData)
	if err != nil {
		return nil, fmt.Errorf("normalize image: %w", err)
	}

	model := tf.NewGraph()
	if err := model.Import(graph, ""); err != nil {
		return nil, fmt.Errorf("import graph: %w", err)
	}

	input := model.Operation(c.InputOp)
	output := model.Operation(c.OutputOp)
	if input == nil || output == nil {
		return nil, fmt.Errorf("graph has no %q or %q operation", c.InputOp, c.OutputOp)
	}

	session, err := tf.NewSession(model, nil)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	defer session.Close()

	result, err := session.Run(
		map[tf.Output]*tf.Tensor{input.Output(0): image},
		[]tf.Output{output.Output(0)},
		nil)
	if err != nil {
		return nil, fmt.Errorf("run graph: %w", err)
	}

	batch, ok := result[0].Value().([][]float32)
	if !ok || len(batch) == 0 {
		return nil, fmt.Errorf("unexpected output shape %v", result[0].Shape())
	}
	return batch[0], nil
}

// normalize декодирует JPEG в тензор [1, side, side, 3]: (pixel - mean) / scale
func (c *GraphClassifier) normalize(imageData []byte) (*tf.Tensor, error) {
	tensor, err := tf.NewTensor(string(imageData))
	if err != nil {
		return nil, err
	}

	s := op.NewScope()
	input := op.Placeholder(s, tf.String)
	output := op.Div(s,
		op.Sub(s,
			op.ResizeBilinear(s,
				op.ExpandDims(s,
					op.Cast(s,
						op.DecodeJpeg(s, input, op.DecodeJpegChannels(3)), tf.Float),
					op.Const(s.SubScope("make_batch"), int32(0))),
				op.Const(s.SubScope("size"), []int32{c.InputSide, c.InputSide})),
			op.Const(s.SubScope("mean"), c.Mean)),
		op.Const(s.SubScope("scale"), c.Scale))

	graph, err := s.Finalize()
	if err != nil {
		return nil, err
	}

	session, err := tf.NewSession(graph, nil)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	normalized, err := session.Run(
		map[tf.Output]*tf.Tensor{input: tensor},
		[]tf.Output{output},
		nil)
	if err != nil {
		return nil, err
	}
	return normalized[0], nil
}

var _ port.Classifier = (*GraphClassifier)(nil)
