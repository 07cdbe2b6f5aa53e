package port

import "context"

// ModelBundle интерфейс поставляемых с плагином ресурсов модели
type ModelBundle interface {
	// Graph возвращает сериализованный граф модели
	Graph() ([]byte, error)

	// Labels возвращает словарь меток в порядке выхода модели
	Labels() ([]string, error)
}

// Classifier интерфейс движка классификации
type Classifier interface {
	// Classify прогоняет изображение через граф и возвращает оценку на каждую метку
	Classify(ctx context.Context, graph, image []byte) ([]float32, error)
}
