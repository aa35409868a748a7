package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"advanced-todo/internal/client"
	"advanced-todo/internal/client/store"
)

// TaskAPI is the part of the REST client the interface needs.
type TaskAPI interface {
	ListTasks(ctx context.Context, params client.ListParams) ([]client.Task, error)
	CreateTask(ctx context.Context, input client.CreateInput) (client.Task, error)
	UpdateTask(ctx context.Context, id int64, patch client.Patch) (client.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type fetchedMsg struct {
	result store.FetchResult
}

type createdMsg struct {
	task client.Task
}

type updatedMsg struct {
	task client.Task
}

type deletedMsg struct {
	id int64
}

type mutationErrMsg struct {
	err error
}

func fetchCmd(ctx context.Context, api TaskAPI, req store.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		tasks, err := api.ListTasks(ctx, req.Params)
		return fetchedMsg{result: store.FetchResult{Seq: req.Seq, Tasks: tasks, Err: err}}
	}
}

func createCmd(ctx context.Context, api TaskAPI, input client.CreateInput) tea.Cmd {
	return func() tea.Msg {
		task, err := api.CreateTask(ctx, input)
		if err != nil {
			return mutationErrMsg{err: err}
		}
		return createdMsg{task: task}
	}
}

func updateCmd(ctx context.Context, api TaskAPI, id int64, patch client.Patch) tea.Cmd {
	return func() tea.Msg {
		task, err := api.UpdateTask(ctx, id, patch)
		if err != nil {
			return mutationErrMsg{err: err}
		}
		return updatedMsg{task: task}
	}
}

func deleteCmd(ctx context.Context, api TaskAPI, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := api.DeleteTask(ctx, id); err != nil {
			return mutationErrMsg{err: err}
		}
		return deletedMsg{id: id}
	}
}
