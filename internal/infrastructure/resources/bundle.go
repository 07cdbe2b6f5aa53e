// Package resources читает поставляемые с плагином граф модели и словарь меток.
package resources

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"

	"label-image-tool/internal/domain/port"
)

const (
	GraphFile  = "tensorflow_inception_graph.pb"
	LabelsFile = "imagenet_comp_graph_label_strings.txt"
)

// Bundle ресурсы модели. Файлы читаются при каждом вызове,
// общее состояние между запусками не хранится.
type Bundle struct {
	fsys       fs.FS
	graphFile  string
	labelsFile string
}

// NewBundle ресурсы из файловой системы fsys со стандартными именами
func NewBundle(fsys fs.FS) *Bundle {
	return &Bundle{
		fsys:       fsys,
		graphFile:  GraphFile,
		labelsFile: LabelsFile,
	}
}

// NewDirBundle ресурсы из каталога на диске
func NewDirBundle(dir string) *Bundle {
	return NewBundle(os.DirFS(dir))
}

func (b *Bundle) Graph() ([]byte, error) {
	data, err := fs.ReadFile(b.fsys, b.graphFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.graphFile, err)
	}
	return data, nil
}

// Labels по строке на метку, индекс строки совпадает с позицией выхода модели
func (b *Bundle) Labels() ([]string, error) {
	file, err := b.fsys.Open(b.labelsFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", b.labelsFile, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		labels = append(labels, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", b.labelsFile, err)
	}
	return labels, nil
}

var _ port.ModelBundle = (*Bundle)(nil)
