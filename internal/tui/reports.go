package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskflow/internal/todo"
)

type reportMode int

const (
	reportCompletions reportMode = iota
	reportCategories
)

type reportsModel struct {
	board  todo.Board
	days   int
	width  int
	height int

	mode  reportMode
	chart barchart.Model
}

func newReportsModel(b todo.Board, days int) reportsModel {
	r := reportsModel{
		board: b,
		days:  days,
		chart: barchart.New(60, 12),
	}
	r.buildChart()
	return r
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r *reportsModel) setBoard(b todo.Board) {
	r.board = b
	r.buildChart()
}

func (r *reportsModel) setDays(days int) {
	r.days = days
	r.buildChart()
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.CycleSort) {
			if r.mode == reportCompletions {
				r.mode = reportCategories
			} else {
				r.mode = reportCompletions
			}
			r.buildChart()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	switch r.mode {
	case reportCategories:
		bars = r.categoryBars()
	default:
		bars = r.completionBars()
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) completionBars() []barchart.BarData {
	style := lipgloss.NewStyle().Foreground(colorSuccess)
	var bars []barchart.BarData
	for _, dc := range todo.CompletedPerDay(r.board.Tasks, r.board.Now(), r.days) {
		bars = append(bars, barchart.BarData{
			Label:  dc.Day.Time().Format("Mon 02"),
			Values: []barchart.BarValue{{Name: "done", Value: float64(dc.Count), Style: style}},
		})
	}
	return bars
}

func (r reportsModel) categoryBars() []barchart.BarData {
	doneStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	var bars []barchart.BarData
	for _, row := range r.categoryRows() {
		bars = append(bars, barchart.BarData{
			Label: truncate(row.category.Name, 8),
			Values: []barchart.BarValue{
				{Name: "done", Value: float64(row.done), Style: doneStyle},
				{Name: "open", Value: float64(row.open), Style: lipgloss.NewStyle().Foreground(lipgloss.Color(row.category.Color))},
			},
		})
	}
	return bars
}

type categoryRow struct {
	category todo.Category
	done     int
	open     int
}

// categoryRows groups tasks by category in board order. Tasks with a
// dangling category land on the fallback category.
func (r reportsModel) categoryRows() []categoryRow {
	index := make(map[string]int)
	var rows []categoryRow
	for _, t := range r.board.Tasks {
		cat := r.board.CategoryOrDefault(t.Category)
		i, ok := index[cat.ID]
		if !ok {
			i = len(rows)
			index[cat.ID] = i
			rows = append(rows, categoryRow{category: cat})
		}
		if t.Completed {
			rows[i].done++
		} else {
			rows[i].open++
		}
	}

	ordered := make([]categoryRow, 0, len(rows))
	for _, c := range r.board.Categories {
		if i, ok := index[c.ID]; ok {
			ordered = append(ordered, rows[i])
			delete(index, c.ID)
		}
	}
	for _, row := range rows {
		if _, ok := index[row.category.ID]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered
}

func (r reportsModel) view() string {
	w := r.width - 4

	completionsTab := inactiveTabStyle.Render("Completions")
	categoriesTab := inactiveTabStyle.Render("By Category")
	var label string
	if r.mode == reportCompletions {
		completionsTab = activeTabStyle.Render("Completions")
		from := todo.DateOf(r.board.Now().AddDate(0, 0, 1-r.days))
		label = fmt.Sprintf("last %d days (%s to %s)", r.days, from, todo.DateOf(r.board.Now()))
	} else {
		categoriesTab = activeTabStyle.Render("By Category")
		label = fmt.Sprintf("%d tasks", len(r.board.Tasks))
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, completionsTab, categoriesTab)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", mutedStyle.Render(label),
	)

	var table string
	if r.mode == reportCompletions {
		table = r.renderCompletionSummary()
	} else {
		table = r.renderCategoryTable(w)
	}

	nav := mutedStyle.Render("  enter/s: switch report")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", table, "", nav,
		),
	)
}

func (r reportsModel) renderCompletionSummary() string {
	total := 0
	best := todo.DayCount{}
	for _, dc := range todo.CompletedPerDay(r.board.Tasks, r.board.Now(), r.days) {
		total += dc.Count
		if dc.Count > best.Count {
			best = dc
		}
	}
	if total == 0 {
		return mutedStyle.Render("  No tasks completed in this period")
	}
	summary := fmt.Sprintf("  %s completed, %.1f per day",
		highlightStyle.Render(fmt.Sprint(total)), float64(total)/float64(r.days))
	summary += mutedStyle.Render(fmt.Sprintf("  best day %s (%d)", best.Day.Time().Format("Mon Jan 02"), best.Count))
	return summary
}

func (r reportsModel) renderCategoryTable(w int) string {
	rows := r.categoryRows()
	if len(rows) == 0 {
		return mutedStyle.Render("  No tasks yet")
	}

	var lines []string
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %-22s %6s %6s %8s", "Category", "Done", "Open", "Rate")))
	lines = append(lines, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 46))))
	for _, row := range rows {
		total := row.done + row.open
		rate := float64(row.done) / float64(total) * 100
		lines = append(lines, fmt.Sprintf("  %s %-20s %6d %6d %7.0f%%",
			colorDot(row.category.Color), truncate(row.category.Name, 20), row.done, row.open, rate,
		))
	}
	return strings.Join(lines, "\n")
}
