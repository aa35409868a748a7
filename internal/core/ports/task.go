package ports

import (
	"context"

	"advanced-todo/internal/core/domain"
)

type TaskRepository interface {
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type TaskService interface {
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
