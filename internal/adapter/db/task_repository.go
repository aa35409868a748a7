package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"advanced-todo/internal/core/domain"
	"advanced-todo/internal/core/ports"
)

const (
	insertTaskQuery     = "INSERT INTO tasks (title, description) VALUES (?, ?)"
	selectTaskByIDQuery = selectTasksQuery + " WHERE id = ?"
	deleteTaskQuery     = "DELETE FROM tasks WHERE id = ?"
)

type TaskRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

type taskRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, dialect: dialectFor(db.DriverName())}
}

func (r *TaskRepository) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query, args, err := buildListTasksQuery(r.db, filter)
	if err != nil {
		return nil, storageError("build list query", err)
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storageError("list tasks", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if r.dialect == DialectMySQL {
		return r.createTaskWithoutReturning(ctx, input)
	}

	var row taskRow
	query := r.db.Rebind(insertTaskQuery + " RETURNING " + taskColumns)
	if err := r.db.GetContext(ctx, &row, query, input.Title, input.Description); err != nil {
		return domain.Task{}, storageError("insert task", err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) createTaskWithoutReturning(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(insertTaskQuery), input.Title, input.Description)
	if err != nil {
		return domain.Task{}, storageError("insert task", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, storageError("read inserted id", err)
	}
	return r.getTask(ctx, id)
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, input domain.UpdateTaskInput) (domain.Task, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if input.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *input.Title)
	}
	if input.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *input.Description)
	}
	if input.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*input.Status))
	}
	if len(sets) == 0 {
		return domain.Task{}, domain.ErrNothingToUpdate
	}
	sets = append(sets, "updated_at = "+r.nowExpr())
	args = append(args, id)

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	if r.dialect == DialectMySQL {
		result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
		if err != nil {
			return domain.Task{}, storageError("update task", err)
		}
		if err := requireAffected(result); err != nil {
			return domain.Task{}, err
		}
		return r.getTask(ctx, id)
	}

	var row taskRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(query+" RETURNING "+taskColumns), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, storageError("update task", err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTaskQuery), id)
	if err != nil {
		return storageError("delete task", err)
	}
	return requireAffected(result)
}

func (r *TaskRepository) getTask(ctx context.Context, id int64) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(selectTaskByIDQuery), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, storageError("get task", err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) nowExpr() string {
	if r.dialect == DialectMySQL {
		return "CURRENT_TIMESTAMP(6)"
	}
	return "NOW()"
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("read affected rows", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	return domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
