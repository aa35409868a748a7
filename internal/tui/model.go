// Package tui renders the task list in the terminal.
//
// The bubbletea Update loop is the only place where store transitions run.
// Network calls happen in tea.Cmds and come back as messages.
package tui

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"advanced-todo/internal/client"
	"advanced-todo/internal/client/store"
	"advanced-todo/internal/core/domain"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeCompose
	modeEdit
	modeConfirmDelete
)

const (
	fieldTitle = iota
	fieldDescription
)

type Model struct {
	ctx    context.Context
	api    TaskAPI
	apiURL string

	state  store.State
	mode   mode
	cursor int
	field  int

	editID          int64
	editTitle       string
	editDescription string

	width int
}

func New(ctx context.Context, api TaskAPI, apiURL string) *Model {
	return &Model{
		ctx:    ctx,
		api:    api,
		apiURL: apiURL,
		state:  store.New(),
	}
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, api TaskAPI, apiURL string) error {
	program := tea.NewProgram(New(ctx, api, apiURL), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) State() store.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	var req store.FetchRequest
	m.state, req = store.Refresh(m.state)
	return fetchCmd(m.ctx, m.api, req)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case fetchedMsg:
		m.state = store.ApplyFetch(m.state, msg.result)
		m.clampCursor()
		return m, nil
	case createdMsg:
		m.state = store.ApplyCreated(m.state, msg.task)
		m.mode = modeBrowse
		return m, nil
	case updatedMsg:
		m.state = store.ApplyUpdated(m.state, msg.task)
		if m.mode == modeEdit && m.editID == msg.task.ID {
			m.mode = modeBrowse
		}
		return m, nil
	case deletedMsg:
		m.state = store.ApplyDeleted(m.state, msg.id)
		m.clampCursor()
		return m, nil
	case mutationErrMsg:
		m.state = store.ApplyMutationError(m.state, msg.err)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeCompose:
			return m.updateCompose(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var req store.FetchRequest

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case "r":
		m.state, req = store.Refresh(m.state)
		return m, fetchCmd(m.ctx, m.api, req)
	case "/":
		m.mode = modeSearch
	case "o":
		next := domain.SortAsc
		if m.state.Filters.Sort == domain.SortAsc {
			next = domain.SortDesc
		}
		m.state, req = store.SetSort(m.state, next)
		return m, fetchCmd(m.ctx, m.api, req)
	case "1", "2", "3":
		status := domain.TaskStatuses[int(msg.String()[0]-'1')]
		m.state, req = store.ToggleStatus(m.state, status)
		return m, fetchCmd(m.ctx, m.api, req)
	case "n":
		m.mode = modeCompose
		m.field = fieldTitle
		m.state = store.ClearError(m.state)
	case "e", "enter":
		if task, ok := m.selected(); ok {
			m.mode = modeEdit
			m.field = fieldTitle
			m.editID = task.ID
			m.editTitle = task.Title
			m.editDescription = task.Description
			m.state = store.ClearError(m.state)
		}
	case "s", " ":
		if task, ok := m.selected(); ok {
			next := task.Status.Next()
			m.state = store.ClearError(m.state)
			return m, updateCmd(m.ctx, m.api, task.ID, client.Patch{Status: &next})
		}
	case "d", "x":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	}

	search, changed := editText(m.state.Filters.Search, msg)
	if !changed {
		return m, nil
	}

	var req store.FetchRequest
	m.state, req = store.SetSearch(m.state, search)
	return m, fetchCmd(m.ctx, m.api, req)
}

func (m *Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.field = 1 - m.field
		return m, nil
	case tea.KeyEnter:
		var (
			input client.CreateInput
			ok    bool
		)
		m.state, input, ok = store.ValidateCompose(m.state)
		if !ok {
			return m, nil
		}
		return m, createCmd(m.ctx, m.api, input)
	}

	compose := m.state.Compose
	if m.field == fieldTitle {
		title, _ := editText(compose.Title, msg)
		compose.Title = limitRunes(title, domain.MaxTitleLength)
	} else {
		compose.Description, _ = editText(compose.Description, msg)
	}
	m.state = store.SetCompose(m.state, compose)
	return m, nil
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.field = 1 - m.field
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.editTitle)
		if title == "" {
			m.state = store.ApplyMutationError(m.state, errors.New(store.MsgTitleRequired))
			return m, nil
		}
		description := m.editDescription
		return m, updateCmd(m.ctx, m.api, m.editID, client.Patch{Title: &title, Description: &description})
	}

	if m.field == fieldTitle {
		title, _ := editText(m.editTitle, msg)
		m.editTitle = limitRunes(title, domain.MaxTitleLength)
	} else {
		m.editDescription, _ = editText(m.editDescription, msg)
	}
	return m, nil
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	task, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.state = store.ClearError(m.state)
	return m, deleteCmd(m.ctx, m.api, task.ID)
}

func (m *Model) selected() (client.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return client.Task{}, false
	}
	return m.state.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// editText applies a single key press to s. It reports whether s changed.
func editText(s string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return s + string(msg.Runes), true
	case tea.KeySpace:
		return s + " ", true
	case tea.KeyBackspace:
		if s == "" {
			return s, false
		}
		_, size := utf8.DecodeLastRuneInString(s)
		return s[:len(s)-size], true
	case tea.KeyCtrlU:
		return "", s != ""
	}
	return s, false
}

func limitRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
