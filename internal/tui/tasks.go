package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskflow/internal/todo"
)

type tasksModel struct {
	board  todo.Board
	prefs  preferences
	width  int
	height int

	query   todo.Query
	visible []todo.Task
	cursor  int
	offset  int

	search    textinput.Model
	searching bool

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"
	editingID  string

	// Form values as pointers (survive value copies)
	formTitle    *string
	formDesc     *string
	formPriority *string
	formCategory *string
	formDue      *string
}

func newTasksModel(b todo.Board, prefs preferences) tasksModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search tasks..."
	ti.CharLimit = 120

	title, desc, prio, cat, due := "", "", "", "", ""
	m := tasksModel{
		board:        b,
		prefs:        prefs,
		query:        prefs.query,
		search:       ti,
		formTitle:    &title,
		formDesc:     &desc,
		formPriority: &prio,
		formCategory: &cat,
		formDue:      &due,
	}
	m.refresh()
	return m
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.clampCursor()
}

func (m *tasksModel) setBoard(b todo.Board) {
	m.board = b
	m.refresh()
}

// setPreferences swaps in new defaults and resets the filters to them.
func (m *tasksModel) setPreferences(p preferences) {
	m.prefs = p
	m.resetFilters()
}

func (m *tasksModel) resetFilters() {
	m.query = m.prefs.query
	m.search.SetValue("")
	m.refresh()
}

func (m *tasksModel) refresh() {
	m.visible = m.board.Apply(m.query)
	m.clampCursor()
}

func (m *tasksModel) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m tasksModel) listRows() int {
	// panel border, title, filter bar, blank line, hint
	return max(m.height-8, 3)
}

// capturing reports whether keys should bypass the global bindings.
func (m tasksModel) capturing() bool {
	return m.formActive || m.searching
}

func (m tasksModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return todo.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.clampCursor()
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.clampCursor()
		}
	case key.Matches(keyMsg, keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, emit(toggleTaskMsg{id: t.ID})
		}
	case key.Matches(keyMsg, keys.Delete):
		if t, ok := m.selected(); ok {
			return m, emit(deleteTaskMsg{id: t.ID})
		}
	case key.Matches(keyMsg, keys.New):
		return m.showTaskForm(nil)
	case key.Matches(keyMsg, keys.Edit), key.Matches(keyMsg, keys.Enter):
		if t, ok := m.selected(); ok {
			return m.showTaskForm(&t)
		}
	case key.Matches(keyMsg, keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(keyMsg, keys.CycleStatus):
		m.query.Status = cycle(todo.Statuses, m.query.Status)
		m.refresh()
	case key.Matches(keyMsg, keys.CyclePriority):
		m.query.Priority = cycle(append([]todo.Priority{""}, todo.Priorities...), m.query.Priority)
		m.refresh()
	case key.Matches(keyMsg, keys.CycleCategory):
		ids := []string{""}
		for _, c := range m.board.Categories {
			ids = append(ids, c.ID)
		}
		m.query.Category = cycle(ids, m.query.Category)
		m.refresh()
	case key.Matches(keyMsg, keys.CycleSort):
		m.query.SortBy = cycle(todo.SortKeys, m.query.SortBy)
		m.refresh()
	case key.Matches(keyMsg, keys.Reset):
		m.resetFilters()
	}
	return m, nil
}

func (m tasksModel) updateSearch(msg tea.Msg) (tasksModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.query.Search = ""
			m.refresh()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query.Search = strings.TrimSpace(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m tasksModel) showTaskForm(existing *todo.Task) (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formDesc = ""
	*m.formPriority = string(m.prefs.priority)
	*m.formCategory = m.prefs.category
	*m.formDue = ""
	m.formType = "new"
	m.editingID = ""

	if existing != nil {
		*m.formTitle = existing.Title
		*m.formDesc = existing.Description
		*m.formPriority = string(existing.Priority)
		*m.formCategory = existing.Category
		if existing.DueDate != nil {
			*m.formDue = existing.DueDate.String()
		}
		m.formType = "edit"
		m.editingID = existing.ID
	}

	priorityOptions := make([]huh.Option[string], 0, len(todo.Priorities))
	for _, p := range todo.Priorities {
		priorityOptions = append(priorityOptions, huh.NewOption(string(p), string(p)))
	}
	var categoryOptions []huh.Option[string]
	for _, c := range m.board.Categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.ID))
	}
	if len(categoryOptions) == 0 {
		categoryOptions = append(categoryOptions, huh.NewOption(todo.Uncategorized.Name, todo.Uncategorized.ID))
	}

	title := "New Task"
	if m.formType == "edit" {
		title = "Edit Task"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).Validate(notBlank("title")),
			huh.NewText().Title("Description").Value(m.formDesc),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(m.formPriority),
			huh.NewSelect[string]().Title("Category").Options(categoryOptions...).Value(m.formCategory),
			huh.NewInput().Title("Due date").Placeholder("YYYY-MM-DD").Value(m.formDue).Validate(validDue),
		).Title(title),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.submitForm()
	}

	return m, cmd
}

func (m tasksModel) submitForm() tea.Cmd {
	title := *m.formTitle
	desc := *m.formDesc
	prio := todo.Priority(*m.formPriority)
	cat := *m.formCategory
	due, err := parseDue(*m.formDue)
	if err != nil {
		return errorStatus("Error: %v", err)
	}

	if m.formType == "edit" {
		patch := todo.Patch{
			Title:       &title,
			Description: &desc,
			Priority:    &prio,
			Category:    &cat,
		}
		if due == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = due
		}
		return emit(updateTaskMsg{id: m.editingID, patch: patch})
	}

	return emit(addTaskMsg{task: todo.NewTask{
		Title:       title,
		Description: desc,
		Priority:    prio,
		Category:    cat,
		DueDate:     due,
	}})
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validDue(s string) error {
	_, err := parseDue(s)
	return err
}

// parseDue accepts an empty string as "no due date".
func parseDue(s string) (*todo.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := todo.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("due date must be YYYY-MM-DD")
	}
	return &d, nil
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(m.form.View())
	}

	count := mutedStyle.Render(fmt.Sprintf("%d of %d", len(m.visible), len(m.board.Tasks)))
	header := fmt.Sprintf("%s  %s", titleStyle.Render("Tasks"), count)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, m.renderFilterBar())
	rows = append(rows, "")

	if len(m.visible) == 0 {
		if len(m.board.Tasks) == 0 {
			rows = append(rows, mutedStyle.Render("  No tasks yet. Press n to add one."))
		} else {
			rows = append(rows, mutedStyle.Render("  No tasks match the current filters. Press r to reset."))
		}
	} else {
		end := min(m.offset+m.listRows(), len(m.visible))
		for i := m.offset; i < end; i++ {
			rows = append(rows, m.renderRow(i, w))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: done  d: delete  /: search  f/p/c/s: filter & sort  r: reset"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderFilterBar() string {
	var search string
	if m.searching || m.search.Value() != "" {
		search = m.search.View()
	} else {
		search = mutedStyle.Render("/ search")
	}

	prio := "any"
	if m.query.Priority != "" {
		prio = string(m.query.Priority)
	}
	cat := "any"
	if m.query.Category != "" {
		cat = m.board.CategoryOrDefault(m.query.Category).Name
	}

	filters := []string{
		"status: " + highlightStyle.Render(string(m.query.Status)),
		"priority: " + highlightStyle.Render(prio),
		"category: " + highlightStyle.Render(cat),
		"sort: " + highlightStyle.Render(sortLabel(m.query.SortBy)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, search, "   ", strings.Join(filters, "  "))
}

func (m tasksModel) renderRow(i, w int) string {
	t := m.visible[i]
	now := m.board.Now()

	cursor := "  "
	style := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	check := "[ ]"
	title := truncate(t.Title, max(w-50, 12))
	if t.Completed {
		check = successStyle.Render("[x]")
		title = doneTitleStyle.Render(title)
	} else {
		title = style.Render(title)
	}

	cat := m.board.CategoryOrDefault(t.Category)
	due := ""
	if t.DueDate != nil {
		due = formatDue(*t.DueDate, todo.DateOf(now))
		switch {
		case todo.IsOverdue(t, now):
			due = errorStyle.Render(due)
		case !t.Completed && t.DueDate.Equal(todo.DateOf(now)):
			due = warningStyle.Render(due)
		default:
			due = mutedStyle.Render(due)
		}
	}

	return fmt.Sprintf("%s%s %s  %s %s  %s  %s",
		cursor, check, title,
		colorDot(cat.Color), mutedStyle.Render(cat.Name),
		priorityLabel(t.Priority), due,
	)
}
