package port

import "context"

// WorkflowManager интерфейс движка процессов хоста
type WorkflowManager interface {
	// ActivityVariable записывает переменную процесса через активность
	ActivityVariable(ctx context.Context, activityID, name, value string) error
}
