package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"advanced-todo/internal/client"
	"advanced-todo/internal/core/domain"
)

const defaultWidth = 72

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	statusStyles = map[domain.TaskStatus]lipgloss.Style{
		domain.TaskStatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.TaskStatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		domain.TaskStatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

var statusLabels = map[domain.TaskStatus]string{
	domain.TaskStatusPending:    "Pending",
	domain.TaskStatusInProgress: "In progress",
	domain.TaskStatusCompleted:  "Completed",
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Advanced To-Do"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(m.apiURL + "/health"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", m.ruleWidth())))
	b.WriteString("\n\n")

	m.writeFilters(&b)
	m.writeCompose(&b)

	if m.state.Err != "" {
		b.WriteString(errorStyle.Render(m.state.Err))
		b.WriteString("\n\n")
	}

	m.writeTasks(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *Model) ruleWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) writeFilters(b *strings.Builder) {
	search := m.state.Filters.Search
	label := "Search: "
	if m.mode == modeSearch {
		label = focusStyle.Render("Search: ")
		search += "█"
	}
	b.WriteString(label + search + "\n")

	sortLabel := "newest first"
	if m.state.Filters.Sort == domain.SortAsc {
		sortLabel = "oldest first"
	}
	b.WriteString("Sort:   " + sortLabel + "\n")

	b.WriteString("Status: ")
	for i, status := range domain.TaskStatuses {
		box := "[ ]"
		if m.state.Filters.Statuses[status] {
			box = "[x]"
		}
		fmt.Fprintf(b, "%d %s %s  ", i+1, box, statusStyles[status].Render(statusLabels[status]))
	}
	b.WriteString("\n\n")
}

func (m *Model) writeCompose(b *strings.Builder) {
	if m.mode != modeCompose {
		return
	}
	b.WriteString(titleStyle.Render("New task") + "\n")
	writeField(b, "Title", m.state.Compose.Title, m.field == fieldTitle)
	writeField(b, "Description", m.state.Compose.Description, m.field == fieldDescription)
	b.WriteString("\n")
}

func (m *Model) writeTasks(b *strings.Builder) {
	if m.state.Loading {
		b.WriteString(mutedStyle.Render("Loading…") + "\n\n")
		return
	}
	if len(m.state.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("No tasks match the current filters.") + "\n\n")
		return
	}

	for i, task := range m.state.Tasks {
		selected := i == m.cursor
		if selected && m.mode == modeEdit && task.ID == m.editID {
			b.WriteString(titleStyle.Render(fmt.Sprintf("Editing #%d", task.ID)) + "\n")
			writeField(b, "Title", m.editTitle, m.field == fieldTitle)
			writeField(b, "Description", m.editDescription, m.field == fieldDescription)
			b.WriteString("\n")
			continue
		}

		line := formatTask(task)
		if selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")

		if selected {
			description := task.Description
			if description == "" {
				description = "No description"
			}
			b.WriteString(mutedStyle.Render("    "+description) + "\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("    created %s · updated %s",
				formatTime(task.CreatedAt), formatTime(task.UpdatedAt))) + "\n")
			if m.mode == modeConfirmDelete {
				b.WriteString(promptStyle.Render("    Delete this task? (y/n)") + "\n")
			}
		}
	}
	b.WriteString("\n")
}

func (m *Model) writeFooter(b *strings.Builder) {
	var help string
	switch m.mode {
	case modeSearch:
		help = "type to search · enter/esc done"
	case modeCompose, modeEdit:
		help = "tab switch field · enter save · esc cancel"
	case modeConfirmDelete:
		help = "y confirm · any other key cancels"
	default:
		help = "n new · e edit · s cycle status · d delete · / search · o sort · 1-3 status filter · r refresh · q quit"
	}
	b.WriteString(mutedStyle.Render(help) + "\n")
}

func writeField(b *strings.Builder, label, value string, focused bool) {
	prefix := "  " + label + ": "
	if focused {
		prefix = focusStyle.Render(prefix)
		value += "█"
	}
	b.WriteString(prefix + value + "\n")
}

func formatTask(task client.Task) string {
	status := statusStyles[task.Status].Render(fmt.Sprintf("%-11s", statusLabels[task.Status]))
	return fmt.Sprintf("  %s  %s %s", status, task.Title, mutedStyle.Render(fmt.Sprintf("#%d", task.ID)))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
