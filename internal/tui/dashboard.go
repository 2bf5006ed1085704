package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskflow/internal/todo"
)

const upcomingLimit = 5

type dashboardModel struct {
	board  todo.Board
	width  int
	height int

	bar progress.Model
}

func newDashboardModel(b todo.Board) dashboardModel {
	return dashboardModel{
		board: b,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(w-12, 10)
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	stats := d.board.Stats()

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderProgressPanel(contentWidth, stats),
		d.renderCounters(contentWidth, stats),
		d.renderUpcomingPanel(contentWidth, stats),
	)
}

func (d dashboardModel) renderProgressPanel(w int, stats todo.Stats) string {
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Progress Overview"),
		highlightStyle.Render(stats.RateLabel()),
	)
	bar := d.bar.ViewAs(stats.CompletionRate / 100)
	detail := mutedStyle.Render(fmt.Sprintf("%d of %d tasks done", stats.Completed, stats.Total))

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", bar, detail),
	)
}

func (d dashboardModel) renderCounters(w int, stats todo.Stats) string {
	counters := []struct {
		label string
		value int
	}{
		{"Total", stats.Total},
		{"Completed", stats.Completed},
		{"Active", stats.Active},
		{"This week", stats.CompletedThisWeek},
	}

	boxWidth := max(w/len(counters)-2, 10)
	var boxes []string
	for _, c := range counters {
		boxes = append(boxes, statBoxStyle.Width(boxWidth).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				statValueStyle.Width(boxWidth-2).Render(strconv.Itoa(c.value)),
				mutedStyle.Render(c.label),
			),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (d dashboardModel) renderUpcomingPanel(w int, stats todo.Stats) string {
	var rows []string
	for _, a := range stats.Alerts() {
		style := warningStyle
		if strings.Contains(a, "overdue") {
			style = errorStyle
		}
		rows = append(rows, style.Render("! "+a))
	}
	if len(rows) > 0 {
		rows = append(rows, "")
	}

	rows = append(rows, titleStyle.Render("Up Next"))
	upcoming := d.upcoming()
	if len(upcoming) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing scheduled. Press 2 to manage tasks."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	today := todo.DateOf(d.board.Now())
	for _, t := range upcoming {
		cat := d.board.CategoryOrDefault(t.Category)
		due := formatDue(*t.DueDate, today)
		if todo.IsOverdue(t, d.board.Now()) {
			due = errorStyle.Render(due)
		} else {
			due = mutedStyle.Render(due)
		}
		rows = append(rows, fmt.Sprintf("  %s %-32s %s  %s",
			colorDot(cat.Color), truncate(t.Title, 32), priorityLabel(t.Priority), due,
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// upcoming lists the next active tasks that have a due date, soonest first.
func (d dashboardModel) upcoming() []todo.Task {
	tasks := d.board.Apply(todo.Query{Status: todo.StatusActive, SortBy: todo.SortDueDate})
	var out []todo.Task
	for _, t := range tasks {
		if t.DueDate == nil {
			// Undated tasks sort last.
			break
		}
		out = append(out, t)
		if len(out) == upcomingLimit {
			break
		}
	}
	return out
}
