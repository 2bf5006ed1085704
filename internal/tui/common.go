package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/taskflow/internal/todo"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewCategories
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Categories", "Reports", "Settings"}

// --- Messages ---

// Views never mutate the board themselves; they emit one of these and the
// App applies it so every change goes through a single save path.

type addTaskMsg struct {
	task todo.NewTask
}

type updateTaskMsg struct {
	id    string
	patch todo.Patch
}

type toggleTaskMsg struct {
	id string
}

type deleteTaskMsg struct {
	id string
}

type addCategoryMsg struct {
	category todo.NewCategory
}

type savedMsg struct{}

type settingsSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func errorStatus(format string, args ...any) tea.Cmd {
	return emit(statusMsg{text: fmt.Sprintf(format, args...), isError: true})
}

// formatDue renders a due date relative to today.
func formatDue(d todo.Date, today todo.Date) string {
	switch n := d.DaysUntil(today); {
	case n == 0:
		return "Today"
	case n == 1:
		return "Tomorrow"
	case n == -1:
		return "Yesterday"
	case n < 0:
		return fmt.Sprintf("%d days ago", -n)
	default:
		return fmt.Sprintf("in %d days", n)
	}
}

// cycle returns the element after cur in opts, wrapping around. An unknown
// cur yields the first element.
func cycle[T comparable](opts []T, cur T) T {
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
