package service

import (
	"context"

	"advanced-todo/internal/core/domain"
	"advanced-todo/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.taskRepository.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if !domain.IsNonEmptyTitle(input.Title) {
		return domain.Task{}, domain.ErrInvalidTitle
	}

	return s.taskRepository.CreateTask(ctx, domain.CreateTaskInput{
		Title:       domain.ClampTitle(input.Title),
		Description: input.Description,
	})
}

// UpdateTask checks every present field before touching storage, so a bad
// field rejects the whole patch and the row stays unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input domain.UpdateTaskInput) (domain.Task, error) {
	if input.IsEmpty() {
		return domain.Task{}, domain.ErrNothingToUpdate
	}

	patch := domain.UpdateTaskInput{Description: input.Description}

	if input.Title != nil {
		if !domain.IsNonEmptyTitle(*input.Title) {
			return domain.Task{}, domain.ErrInvalidTitle
		}
		title := domain.ClampTitle(*input.Title)
		patch.Title = &title
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return domain.Task{}, domain.ErrInvalidStatus
		}
		status := *input.Status
		patch.Status = &status
	}

	return s.taskRepository.UpdateTask(ctx, id, patch)
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.taskRepository.DeleteTask(ctx, id)
}

var _ ports.TaskService = (*TaskService)(nil)
