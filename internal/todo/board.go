package todo

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle = errors.New("task title must not be empty")
	ErrEmptyName  = errors.New("category name must not be empty")
)

// Uncategorized is returned by CategoryOrDefault when no categories exist.
var Uncategorized = Category{ID: "", Name: "Uncategorized", Color: "#666666", Icon: "tag"}

// Board owns the task and category lists. Mutations return a new Board and
// never write through to slices shared with the receiver.
type Board struct {
	Tasks      []Task
	Categories []Category

	now   func() time.Time
	newID func() string
}

type Option func(*Board)

// WithClock sets the time source used for createdAt and completedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithIDs sets the identifier generator for new tasks and categories.
func WithIDs(newID func() string) Option {
	return func(b *Board) { b.newID = newID }
}

func NewBoard(tasks []Task, categories []Category, opts ...Option) Board {
	b := Board{
		Tasks:      tasks,
		Categories: categories,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, o := range opts {
		o(&b)
	}
	return b
}

func (b Board) Now() time.Time {
	if b.now == nil {
		return time.Now().UTC()
	}
	return b.now()
}

func (b Board) id() string {
	if b.newID == nil {
		return uuid.NewString()
	}
	return b.newID()
}

// Add prepends a new, uncompleted task.
func (b Board) Add(n NewTask) (Board, Task, error) {
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return b, Task{}, ErrEmptyTitle
	}
	prio := n.Priority
	if !prio.Valid() {
		prio = PriorityMedium
	}
	t := Task{
		ID:          b.id(),
		Title:       title,
		Description: strings.TrimSpace(n.Description),
		Priority:    prio,
		Category:    n.Category,
		DueDate:     cloneDate(n.DueDate),
		CreatedAt:   b.Now(),
	}
	tasks := make([]Task, 0, len(b.Tasks)+1)
	tasks = append(tasks, t)
	tasks = append(tasks, b.Tasks...)
	b.Tasks = tasks
	return b, t, nil
}

// Update applies p to the task with the given id. Unknown ids are ignored.
func (b Board) Update(id string, p Patch) Board {
	return b.mapTask(id, func(t Task) Task {
		if p.Title != nil {
			if title := strings.TrimSpace(*p.Title); title != "" {
				t.Title = title
			}
		}
		if p.Description != nil {
			t.Description = strings.TrimSpace(*p.Description)
		}
		if p.Priority != nil && p.Priority.Valid() {
			t.Priority = *p.Priority
		}
		if p.Category != nil {
			t.Category = *p.Category
		}
		if p.ClearDueDate {
			t.DueDate = nil
		} else if p.DueDate != nil {
			t.DueDate = cloneDate(p.DueDate)
		}
		// Direct edits of the flag leave completedAt alone; only Toggle
		// moves it.
		if p.Completed != nil {
			t.Completed = *p.Completed
		}
		return t
	})
}

// Delete removes the task with the given id. Unknown ids are ignored.
func (b Board) Delete(id string) Board {
	b.Tasks = slices.DeleteFunc(slices.Clone(b.Tasks), func(t Task) bool { return t.ID == id })
	return b
}

// Toggle flips completion. Completing stamps completedAt with the board
// clock; reopening clears it.
func (b Board) Toggle(id string) Board {
	now := b.Now()
	return b.mapTask(id, func(t Task) Task {
		t.Completed = !t.Completed
		if t.Completed {
			at := now
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
		return t
	})
}

func (b Board) AddCategory(n NewCategory) (Board, Category, error) {
	name := strings.TrimSpace(n.Name)
	if name == "" {
		return b, Category{}, ErrEmptyName
	}
	c := Category{ID: b.id(), Name: name, Color: n.Color, Icon: n.Icon}
	cats := make([]Category, 0, len(b.Categories)+1)
	cats = append(cats, b.Categories...)
	b.Categories = append(cats, c)
	return b, c, nil
}

func (b Board) Task(id string) (Task, bool) {
	for _, t := range b.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (b Board) Category(id string) (Category, bool) {
	for _, c := range b.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryOrDefault resolves id, falling back to the first category (or
// Uncategorized) for dangling references.
func (b Board) CategoryOrDefault(id string) Category {
	if c, ok := b.Category(id); ok {
		return c
	}
	if len(b.Categories) > 0 {
		return b.Categories[0]
	}
	return Uncategorized
}

func (b Board) Apply(q Query) []Task { return Apply(b.Tasks, q) }

func (b Board) Stats() Stats { return Summarize(b.Tasks, b.Now()) }

func (b Board) mapTask(id string, fn func(Task) Task) Board {
	i := slices.IndexFunc(b.Tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return b
	}
	tasks := slices.Clone(b.Tasks)
	tasks[i] = fn(tasks[i])
	b.Tasks = tasks
	return b
}

func cloneDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
