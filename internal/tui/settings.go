package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskflow/internal/persist"
	"github.com/sadopc/taskflow/internal/store"
	"github.com/sadopc/taskflow/internal/todo"
)

const defaultReportDays = 7

// preferences are the user defaults kept in the settings table.
type preferences struct {
	query      todo.Query
	priority   todo.Priority
	category   string
	reportDays int
}

// loadPreferences reads the settings, falling back per key on bad values.
func loadPreferences(s *store.Store) preferences {
	p := preferences{
		query:      todo.DefaultQuery(),
		priority:   todo.PriorityMedium,
		reportDays: defaultReportDays,
	}
	if s == nil {
		return p
	}
	if v, err := todo.ParseSortKey(s.SettingOr(store.SettingDefaultSort, "")); err == nil {
		p.query.SortBy = v
	}
	if v, err := todo.ParseStatus(s.SettingOr(store.SettingDefaultStatus, "")); err == nil {
		p.query.Status = v
	}
	if v, err := todo.ParsePriority(s.SettingOr(store.SettingDefaultPriority, "")); err == nil {
		p.priority = v
	}
	p.category = s.SettingOr(store.SettingDefaultCategory, "")
	if n, err := strconv.Atoi(s.SettingOr(store.SettingReportDays, "")); err == nil && n > 0 && n <= 31 {
		p.reportDays = n
	}
	return p
}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	categories []todo.Category
	settings   []store.Setting
	lastSaved  time.Time // zero when the tasks are not kept in this store
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	sortBy     *string
	status     *string
	priority   *string
	category   *string
	reportDays *string
}

func newSettingsModel(s *store.Store) settingsModel {
	sb, st, pr, ca, rd := "", "", "", "", ""
	return settingsModel{
		store:      s,
		sortBy:     &sb,
		status:     &st,
		priority:   &pr,
		category:   &ca,
		reportDays: &rd,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings  []store.Setting
	lastSaved time.Time
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		saved, _, err := s.store.UpdatedAt(persist.TasksKey)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		return settingsDataMsg{settings: settings, lastSaved: saved}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.lastSaved = msg.lastSaved
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	prefs := loadPreferences(s.store)
	*s.sortBy = string(prefs.query.SortBy)
	*s.status = string(prefs.query.Status)
	*s.priority = string(prefs.priority)
	*s.category = prefs.category
	*s.reportDays = strconv.Itoa(prefs.reportDays)

	sortOptions := make([]huh.Option[string], 0, len(todo.SortKeys))
	for _, k := range todo.SortKeys {
		sortOptions = append(sortOptions, huh.NewOption(sortLabel(k), string(k)))
	}
	statusOptions := make([]huh.Option[string], 0, len(todo.Statuses))
	for _, st := range todo.Statuses {
		statusOptions = append(statusOptions, huh.NewOption(string(st), string(st)))
	}
	priorityOptions := make([]huh.Option[string], 0, len(todo.Priorities))
	for _, p := range todo.Priorities {
		priorityOptions = append(priorityOptions, huh.NewOption(string(p), string(p)))
	}
	categoryOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range s.categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.ID))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Sort tasks by").Options(sortOptions...).Value(s.sortBy),
			huh.NewSelect[string]().Title("Show").Options(statusOptions...).Value(s.status),
		).Title("Task list"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default priority").Options(priorityOptions...).Value(s.priority),
			huh.NewSelect[string]().Title("Default category").Options(categoryOptions...).Value(s.category),
			huh.NewInput().Title("Report window (days)").Value(s.reportDays).Validate(validReportDays),
		).Title("New tasks and reports"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, errorStatus("Settings error: %v", err)
		}
		return s, tea.Batch(s.refresh(), emit(settingsSavedMsg{}))
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := []store.Setting{
		{Key: store.SettingDefaultSort, Value: *s.sortBy},
		{Key: store.SettingDefaultStatus, Value: *s.status},
		{Key: store.SettingDefaultPriority, Value: *s.priority},
		{Key: store.SettingDefaultCategory, Value: *s.category},
		{Key: store.SettingReportDays, Value: *s.reportDays},
	}
	for _, v := range values {
		if err := s.store.SetSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	return nil
}

func validReportDays(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 31 {
		return fmt.Errorf("enter a number of days between 1 and 31")
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(s.formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	if !s.lastSaved.IsZero() {
		label := lipgloss.NewStyle().Width(24).Render("last saved")
		value := subtitleStyle.Render(s.lastSaved.Local().Format("2006-01-02 15:04"))
		rows = append(rows, "", fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) formatSettingValue(k, v string) string {
	switch k {
	case store.SettingDefaultSort:
		if sk, err := todo.ParseSortKey(v); err == nil {
			return sortLabel(sk)
		}
	case store.SettingDefaultCategory:
		if v == "" {
			return "none"
		}
		for _, c := range s.categories {
			if c.ID == v {
				return c.Name
			}
		}
		return v + " (missing)"
	case store.SettingReportDays:
		if n, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d days", n)
		}
	}
	return v
}

func sortLabel(k todo.SortKey) string {
	switch k {
	case todo.SortCreated:
		return "newest first"
	case todo.SortDueDate:
		return "due date"
	case todo.SortPriority:
		return "priority"
	case todo.SortAlphabetical:
		return "title A-Z"
	}
	return string(k)
}
