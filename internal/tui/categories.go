package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sadopc/taskflow/internal/todo"
)

var categoryColors = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444",
	"#6C63FF", "#2EC4B6", "#FF6B6B", "#9B59B6",
}

var categoryIcons = []string{"briefcase", "user", "shopping-cart", "heart", "book", "home", "star", "tag"}

type categoriesModel struct {
	board  todo.Board
	width  int
	height int
	cursor int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formName  *string
	formColor *string
	formIcon  *string
}

func newCategoriesModel(b todo.Board) categoriesModel {
	name, color, icon := "", "", ""
	return categoriesModel{
		board:     b,
		formName:  &name,
		formColor: &color,
		formIcon:  &icon,
	}
}

func (c *categoriesModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *categoriesModel) setBoard(b todo.Board) {
	c.board = b
	if c.cursor >= len(b.Categories) {
		c.cursor = max(len(b.Categories)-1, 0)
	}
}

func (c categoriesModel) update(msg tea.Msg) (categoriesModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.board.Categories)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.New):
			return c.showForm()
		}
	}
	return c, nil
}

func (c categoriesModel) showForm() (categoriesModel, tea.Cmd) {
	*c.formName = ""
	*c.formColor = categoryColors[len(c.board.Categories)%len(categoryColors)]
	*c.formIcon = "tag"

	colorOptions := make([]huh.Option[string], 0, len(categoryColors))
	for _, col := range categoryColors {
		colorOptions = append(colorOptions, huh.NewOption(colorDot(col)+" "+col, col))
	}
	iconOptions := make([]huh.Option[string], 0, len(categoryIcons))
	for _, icon := range categoryIcons {
		iconOptions = append(iconOptions, huh.NewOption(icon, icon))
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(c.formName).Validate(notBlank("name")),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(c.formColor),
			huh.NewSelect[string]().Title("Icon").Options(iconOptions...).Value(c.formIcon),
		).Title("New Category"),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c categoriesModel) updateForm(msg tea.Msg) (categoriesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		return c, emit(addCategoryMsg{category: todo.NewCategory{
			Name:  *c.formName,
			Color: *c.formColor,
			Icon:  *c.formIcon,
		}})
	}

	return c, cmd
}

func (c categoriesModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		return activePanelStyle.Width(w).Render(c.form.View())
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Categories"))
	rows = append(rows, "")

	if len(c.board.Categories) == 0 {
		rows = append(rows, mutedStyle.Render("  No categories. Press n to create one."))
	}

	counts := todo.CountByCategory(c.board.Tasks)
	for i, cat := range c.board.Categories {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s",
			cursor, colorDot(cat.Color),
			style.Render(fmt.Sprintf("%-20s", cat.Name)),
			mutedStyle.Render(fmt.Sprintf("%3d tasks  %s", counts[cat.ID], cat.Icon)),
		))
	}

	if n := c.orphaned(counts); n > 0 {
		rows = append(rows, "")
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  %d task%s reference a missing category", n, pluralS(n))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new category"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// orphaned counts tasks whose category id is not on the board.
func (c categoriesModel) orphaned(counts map[string]int) int {
	n := 0
	for id, count := range counts {
		if _, ok := c.board.Category(id); !ok {
			n += count
		}
	}
	return n
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
