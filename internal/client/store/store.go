// Package store holds the client's task list state.
//
// State is a plain value. Every change goes through a transition function that
// takes the current state and returns the next one; nothing here performs I/O.
// Transitions that change the list filters also return a FetchRequest, and the
// caller is expected to run it and feed the outcome back through ApplyFetch.
package store

import (
	"errors"
	"strings"

	"advanced-todo/internal/client"
	"advanced-todo/internal/core/domain"
)

const (
	MsgTitleRequired = "title is required"
	msgGenericError  = "something went wrong"
)

type Filters struct {
	Search   string
	Sort     domain.SortDirection
	Statuses map[domain.TaskStatus]bool
}

// ActiveStatuses returns the checked statuses in enum order.
func (f Filters) ActiveStatuses() []domain.TaskStatus {
	var active []domain.TaskStatus
	for _, status := range domain.TaskStatuses {
		if f.Statuses[status] {
			active = append(active, status)
		}
	}
	return active
}

func (f Filters) Params() client.ListParams {
	return client.ListParams{
		Statuses: f.ActiveStatuses(),
		Search:   f.Search,
		Sort:     f.Sort,
	}
}

func (f Filters) clone() Filters {
	statuses := make(map[domain.TaskStatus]bool, len(f.Statuses))
	for status, checked := range f.Statuses {
		statuses[status] = checked
	}
	f.Statuses = statuses
	return f
}

type Compose struct {
	Title       string
	Description string
}

type State struct {
	Filters Filters
	Tasks   []client.Task
	Loading bool
	Err     string
	Compose Compose

	// seq is the number of the most recently issued fetch.
	seq uint64
}

type FetchRequest struct {
	Seq    uint64
	Params client.ListParams
}

type FetchResult struct {
	Seq   uint64
	Tasks []client.Task
	Err   error
}

// New returns the initial state: every status checked, newest first.
func New() State {
	statuses := make(map[domain.TaskStatus]bool, len(domain.TaskStatuses))
	for _, status := range domain.TaskStatuses {
		statuses[status] = true
	}
	return State{
		Filters: Filters{Sort: domain.SortDesc, Statuses: statuses},
		Tasks:   []client.Task{},
	}
}

// LatestSeq reports the number of the newest issued fetch.
func (s State) LatestSeq() uint64 {
	return s.seq
}

// Refresh issues a fetch for the current filters.
func Refresh(s State) (State, FetchRequest) {
	s.seq++
	s.Loading = true
	s.Err = ""
	return s, FetchRequest{Seq: s.seq, Params: s.Filters.Params()}
}

func SetSearch(s State, search string) (State, FetchRequest) {
	s.Filters = s.Filters.clone()
	s.Filters.Search = search
	return Refresh(s)
}

func SetSort(s State, sort domain.SortDirection) (State, FetchRequest) {
	s.Filters = s.Filters.clone()
	s.Filters.Sort = domain.ParseSortDirection(string(sort))
	return Refresh(s)
}

func ToggleStatus(s State, status domain.TaskStatus) (State, FetchRequest) {
	s.Filters = s.Filters.clone()
	s.Filters.Statuses[status] = !s.Filters.Statuses[status]
	return Refresh(s)
}

// ApplyFetch applies a list result. Results from any fetch other than the
// latest issued one are dropped, so a slow earlier request can never
// overwrite a newer list.
func ApplyFetch(s State, result FetchResult) State {
	if result.Seq != s.seq {
		return s
	}

	s.Loading = false
	if result.Err != nil {
		s.Err = errorText(result.Err)
		return s
	}

	s.Err = ""
	s.Tasks = result.Tasks
	if s.Tasks == nil {
		s.Tasks = []client.Task{}
	}
	return s
}

func SetCompose(s State, compose Compose) State {
	s.Compose = compose
	return s
}

// ValidateCompose checks the compose form before it is sent. It returns the
// trimmed input, or ok=false with the state carrying the error message.
func ValidateCompose(s State) (State, client.CreateInput, bool) {
	title := strings.TrimSpace(s.Compose.Title)
	if title == "" {
		s.Err = MsgTitleRequired
		return s, client.CreateInput{}, false
	}
	s.Err = ""
	return s, client.CreateInput{Title: title, Description: s.Compose.Description}, true
}

// ApplyCreated places the server's row where the current sort would show it
// and clears the compose form.
func ApplyCreated(s State, task client.Task) State {
	tasks := make([]client.Task, 0, len(s.Tasks)+1)
	if s.Filters.Sort == domain.SortAsc {
		tasks = append(tasks, s.Tasks...)
		tasks = append(tasks, task)
	} else {
		tasks = append(tasks, task)
		tasks = append(tasks, s.Tasks...)
	}

	s.Tasks = tasks
	s.Compose = Compose{}
	s.Err = ""
	return s
}

// ApplyUpdated replaces the row with the same id by the server's version.
func ApplyUpdated(s State, task client.Task) State {
	tasks := make([]client.Task, len(s.Tasks))
	for i, current := range s.Tasks {
		if current.ID == task.ID {
			current = task
		}
		tasks[i] = current
	}
	s.Tasks = tasks
	s.Err = ""
	return s
}

// ApplyDeleted drops the row once the server has confirmed the delete.
func ApplyDeleted(s State, id int64) State {
	tasks := make([]client.Task, 0, len(s.Tasks))
	for _, task := range s.Tasks {
		if task.ID != id {
			tasks = append(tasks, task)
		}
	}
	s.Tasks = tasks
	s.Err = ""
	return s
}

// ApplyMutationError records a failed create, update or delete. The list is
// left exactly as it was.
func ApplyMutationError(s State, err error) State {
	s.Err = errorText(err)
	return s
}

func ClearError(s State) State {
	s.Err = ""
	return s
}

func errorText(err error) string {
	if err == nil || err.Error() == "" {
		return msgGenericError
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
