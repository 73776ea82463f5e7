package contract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// TaskFilter narrows a task listing. Scope, when set, restricts results to
// documents the given user created or is assigned to.
type TaskFilter struct {
	Scope      *string
	Status     string
	AssignedTo string
	Search     string
	Page       int
	Limit      int
}

// StatusCount is a per-status rollup row.
type StatusCount struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

type ITaskRepository interface {
	CreateTask(ctx context.Context, task *entity.Task) error
	GetTaskByID(ctx context.Context, id string) (*entity.Task, error)
	// ListTasks returns a page of tasks plus the total match count.
	ListTasks(ctx context.Context, filter *TaskFilter) ([]*entity.Task, int64, error)
	UpdateTask(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteTask(ctx context.Context, id string) error
	CountTasks(ctx context.Context, scope *string) (int64, error)
	CountByStatus(ctx context.Context, scope *string) ([]StatusCount, error)
}
