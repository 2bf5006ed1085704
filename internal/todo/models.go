package todo

import (
	"fmt"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank maps a priority to its severity ordinal (high=3, medium=2, low=1).
// Unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (want low, medium or high)", s)
	}
	return p, nil
}

type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool       `json:"completed" yaml:"completed"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Category    string     `json:"category" yaml:"category"`
	DueDate     *Date      `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Icon  string `json:"icon" yaml:"icon"`
}

// NewTask carries the user-supplied fields of a task being created.
type NewTask struct {
	Title       string
	Description string
	Priority    Priority
	Category    string
	DueDate     *Date
}

type NewCategory struct {
	Name  string
	Color string
	Icon  string
}

// Patch is a field-level update. Nil fields are left untouched.
type Patch struct {
	Title        *string
	Description  *string
	Priority     *Priority
	Category     *string
	DueDate      *Date
	ClearDueDate bool
	Completed    *bool
}

// Stats is the summary shown on the dashboard.
type Stats struct {
	Total             int
	Completed         int
	Active            int
	CompletionRate    float64
	DueToday          int
	Overdue           int
	CompletedThisWeek int
}
