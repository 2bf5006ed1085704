package tui

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskflow/internal/export"
	"github.com/sadopc/taskflow/internal/persist"
	"github.com/sadopc/taskflow/internal/store"
	"github.com/sadopc/taskflow/internal/todo"
)

// Options configures an App beyond its data sources.
type Options struct {
	ExportDir string
	Logger    *log.Logger
}

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	persist *persist.Adapter
	board   todo.Board
	logger  *log.Logger
	saveGen uint64

	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard  dashboardModel
	tasks      tasksModel
	categories categoriesModel
	reports    reportsModel
	settings   settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store, p *persist.Adapter, b todo.Board, opts Options) App {
	h := help.New()
	h.ShowAll = false

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	prefs := loadPreferences(s)
	settings := newSettingsModel(s)
	settings.categories = b.Categories

	return App{
		store:      s,
		persist:    p,
		board:      b,
		logger:     logger,
		exportDir:  exportDir,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(b),
		tasks:      newTasksModel(b, prefs),
		categories: newCategoriesModel(b),
		reports:    newReportsModel(b, prefs.reportDays),
		settings:   settings,
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.settings.refresh(),
		tickCmd(),
	)
}

// Due labels and weekly counters only change with the date.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.categories.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewCategories
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewReports
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			if a.activeView == viewSettings {
				return a, a.settings.refresh()
			}
			return a, nil
		}

	case tickMsg:
		// The board clock moves on by itself; rebuild what caches dates.
		a.reports.buildChart()
		return a, tickCmd()

	case addTaskMsg:
		b, t, err := a.board.Add(msg.task)
		if err != nil {
			return a.fail("Error: %v", err)
		}
		a.setStatus("Added " + t.Title)
		cmd := a.commit(b)
		return a, cmd

	case updateTaskMsg:
		if _, ok := a.board.Task(msg.id); !ok {
			return a.fail("Task no longer exists")
		}
		a.setStatus("Task updated")
		cmd := a.commit(a.board.Update(msg.id, msg.patch))
		return a, cmd

	case toggleTaskMsg:
		b := a.board.Toggle(msg.id)
		if t, ok := b.Task(msg.id); ok {
			if t.Completed {
				a.setStatus("Completed " + t.Title)
			} else {
				a.setStatus("Reopened " + t.Title)
			}
		}
		cmd := a.commit(b)
		return a, cmd

	case deleteTaskMsg:
		t, ok := a.board.Task(msg.id)
		if !ok {
			return a, nil
		}
		a.setStatus("Deleted " + t.Title)
		cmd := a.commit(a.board.Delete(msg.id))
		return a, cmd

	case addCategoryMsg:
		b, c, err := a.board.AddCategory(msg.category)
		if err != nil {
			return a.fail("Error: %v", err)
		}
		a.setStatus("Added category " + c.Name)
		cmd := a.commit(b)
		return a, cmd

	case savedMsg:
		return a, nil

	case settingsDataMsg:
		// Loaded at startup, possibly while another view is active.
		a.settings, _ = a.settings.update(msg)
		return a, nil

	case settingsSavedMsg:
		prefs := loadPreferences(a.store)
		a.tasks.setPreferences(prefs)
		a.reports.setDays(prefs.reportDays)
		a.setStatus("Settings saved")
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		if msg.isError {
			a.logger.Printf("tui: %s", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to " + msg.path)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusError = false
}

func (a App) fail(format string, args ...any) (tea.Model, tea.Cmd) {
	a.status = fmt.Sprintf(format, args...)
	a.statusError = true
	return a, nil
}

// commit installs b as the current board and returns the command that
// persists it. Every view sees the new board before the next render.
func (a *App) commit(b todo.Board) tea.Cmd {
	a.board = b
	a.dashboard.board = b
	a.tasks.setBoard(b)
	a.categories.setBoard(b)
	a.reports.setBoard(b)
	a.settings.categories = b.Categories
	a.saveGen++
	return a.saveCmd()
}

func (a App) saveCmd() tea.Cmd {
	if a.persist == nil {
		return nil
	}
	p := a.persist
	gen := a.saveGen
	tasks, cats := a.board.Tasks, a.board.Categories
	// Commands run concurrently; the adapter drops snapshots older than the
	// last one written.
	return func() tea.Msg {
		if _, err := p.SaveGeneration(gen, tasks, cats); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return savedMsg{}
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewCategories:
		a.categories, cmd = a.categories.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.capturing()
	case viewCategories:
		return a.categories.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewCategories:
		content = a.categories.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("taskflow")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = statusBarStyle.Render(" " + a.status)
		}
	}

	active := ""
	if stats := a.board.Stats(); stats.Total > 0 {
		active = accentStyle.Render(fmt.Sprintf(" %d open", stats.Active))
	}

	left := footerStyle.Render(helpView)
	right := active + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.Label()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d tasks to %s", len(a.board.Tasks), a.exportDir)))
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format export.Format) tea.Cmd {
	tasks := a.board.Tasks
	cats := export.CategoryIndex(a.board.Categories)
	dir := a.exportDir
	date := a.board.Now().Format("2006-01-02")

	return func() tea.Msg {
		path := filepath.Join(dir, export.FileName(format, date))
		if err := export.Write(format, tasks, cats, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
