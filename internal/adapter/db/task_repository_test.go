package db

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"advanced-todo/internal/core/domain"
)

var taskColumnNames = []string{"id", "title", "description", "status", "created_at", "updated_at"}

func setupRepository(t *testing.T, driverName string) (*TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = mockDB.Close()
	})

	return NewTaskRepository(sqlx.NewDb(mockDB, driverName)), mock
}

func TestTaskRepository_ListTasks(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)
	older := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, description, status, created_at, updated_at FROM tasks"+
			" WHERE (LOWER(title) LIKE $1 OR LOWER(description) LIKE $2) ORDER BY created_at DESC, id DESC",
	)).
		WithArgs("%milk%", "%milk%").
		WillReturnRows(sqlmock.NewRows(taskColumnNames).
			AddRow(2, "Buy MILK", "", "pending", newer, newer).
			AddRow(1, "Groceries", "milk and eggs", "completed", older, newer))

	tasks, err := repo.ListTasks(context.Background(), domain.NewTaskFilter("", "milk", ""))

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, int64(2), tasks[0].ID)
	require.Equal(t, domain.TaskStatusCompleted, tasks[1].Status)
	require.Equal(t, "milk and eggs", tasks[1].Description)
}

func TestTaskRepository_ListTasks_EmptyIsNotNil(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)
	mock.ExpectQuery("SELECT .* FROM tasks").WillReturnRows(sqlmock.NewRows(taskColumnNames))

	tasks, err := repo.ListTasks(context.Background(), domain.TaskFilter{})

	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Len(t, tasks, 0)
}

func TestTaskRepository_ListTasks_StorageError(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)
	mock.ExpectQuery("SELECT .* FROM tasks").WillReturnError(errors.New("connection refused"))

	_, err := repo.ListTasks(context.Background(), domain.TaskFilter{})

	require.ErrorIs(t, err, domain.ErrStorage)
}

func TestTaskRepository_CreateTask_Postgres(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO tasks (title, description) VALUES ($1, $2) RETURNING id, title, description, status, created_at, updated_at",
	)).
		WithArgs("Buy milk", "").
		WillReturnRows(sqlmock.NewRows(taskColumnNames).AddRow(1, "Buy milk", "", "pending", now, now))

	task, err := repo.CreateTask(context.Background(), domain.CreateTaskInput{Title: "Buy milk"})

	require.NoError(t, err)
	require.Equal(t, int64(1), task.ID)
	require.Equal(t, domain.TaskStatusPending, task.Status)
	require.Equal(t, now, task.CreatedAt)
}

func TestTaskRepository_CreateTask_MySQL(t *testing.T) {
	repo, mock := setupRepository(t, driverMySQL)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks (title, description) VALUES (?, ?)")).
		WithArgs("Buy milk", "2L").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, description, status, created_at, updated_at FROM tasks WHERE id = ?",
	)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(taskColumnNames).AddRow(5, "Buy milk", "2L", "pending", now, now))

	task, err := repo.CreateTask(context.Background(), domain.CreateTaskInput{Title: "Buy milk", Description: "2L"})

	require.NoError(t, err)
	require.Equal(t, int64(5), task.ID)
	require.Equal(t, "2L", task.Description)
}

func TestTaskRepository_UpdateTask_Postgres(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)
	created := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Minute)
	status := domain.TaskStatusCompleted

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING id, title, description, status, created_at, updated_at",
	)).
		WithArgs("completed", int64(1)).
		WillReturnRows(sqlmock.NewRows(taskColumnNames).AddRow(1, "Buy milk", "", "completed", created, updated))

	task, err := repo.UpdateTask(context.Background(), 1, domain.UpdateTaskInput{Status: &status})

	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.True(t, task.UpdatedAt.After(task.CreatedAt))
}

func TestTaskRepository_UpdateTask_AllFields(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)
	now := time.Now().UTC()
	title, description, status := "Renamed", "details", domain.TaskStatusInProgress

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = NOW() WHERE id = $4 RETURNING",
	)).
		WithArgs("Renamed", "details", "in_progress", int64(3)).
		WillReturnRows(sqlmock.NewRows(taskColumnNames).AddRow(3, title, description, "in_progress", now, now))

	_, err := repo.UpdateTask(context.Background(), 3, domain.UpdateTaskInput{
		Title:       &title,
		Description: &description,
		Status:      &status,
	})

	require.NoError(t, err)
}

func TestTaskRepository_UpdateTask_NotFound(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)
	title := "x"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks SET title = $1")).
		WithArgs("x", int64(404)).
		WillReturnRows(sqlmock.NewRows(taskColumnNames))

	_, err := repo.UpdateTask(context.Background(), 404, domain.UpdateTaskInput{Title: &title})

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_UpdateTask_MySQLNotFound(t *testing.T) {
	repo, mock := setupRepository(t, driverMySQL)
	description := "x"

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE tasks SET description = ?, updated_at = CURRENT_TIMESTAMP(6) WHERE id = ?",
	)).
		WithArgs("x", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateTask(context.Background(), 404, domain.UpdateTaskInput{Description: &description})

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_UpdateTask_EmptyPatch(t *testing.T) {
	repo, _ := setupRepository(t, driverPgx)

	_, err := repo.UpdateTask(context.Background(), 1, domain.UpdateTaskInput{})

	require.ErrorIs(t, err, domain.ErrNothingToUpdate)
}

func TestTaskRepository_DeleteTask(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteTask(context.Background(), 1))
	require.ErrorIs(t, repo.DeleteTask(context.Background(), 1), domain.ErrTaskNotFound)
}

func TestTaskRepository_DeleteTask_StorageError(t *testing.T) {
	repo, mock := setupRepository(t, driverPgx)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(errors.New("broken pipe"))

	err := repo.DeleteTask(context.Background(), 1)

	require.ErrorIs(t, err, domain.ErrStorage)
	require.NotErrorIs(t, err, domain.ErrTaskNotFound)
}
