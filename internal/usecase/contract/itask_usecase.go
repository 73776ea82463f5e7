package usecasecontract

import (
	"context"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// TaskInput carries the writable fields of a task record.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      entity.TaskStatus
	AssignedTo  string
}

// TaskView is a task with its assignee's display name resolved at read time.
type TaskView struct {
	entity.Task
	AssignedToName string `json:"assigned_to_name,omitempty"`
}

// ITaskUseCase defines role-scoped CRUD over tasks.
type ITaskUseCase interface {
	CreateTask(ctx context.Context, actor *entity.User, in *TaskInput) (*entity.Task, error)
	GetTask(ctx context.Context, actor *entity.User, id string) (*TaskView, error)
	ListTasks(ctx context.Context, actor *entity.User, filter *contract.TaskFilter) ([]*TaskView, int64, error)
	UpdateTask(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Task, error)
	DeleteTask(ctx context.Context, actor *entity.User, id string) error
}
