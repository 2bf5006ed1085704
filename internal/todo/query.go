package todo

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusAll, StatusActive, StatusCompleted}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAll, StatusActive, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q (want all, active or completed)", s)
}

type SortKey string

const (
	SortCreated      SortKey = "created"
	SortDueDate      SortKey = "dueDate"
	SortPriority     SortKey = "priority"
	SortAlphabetical SortKey = "alphabetical"
)

var SortKeys = []SortKey{SortCreated, SortDueDate, SortPriority, SortAlphabetical}

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortCreated, SortDueDate, SortPriority, SortAlphabetical:
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key %q (want created, dueDate, priority or alphabetical)", s)
}

// Query holds the filter and sort parameters applied to a task list.
// Empty Search, Category and Priority match everything.
type Query struct {
	Search   string
	Category string
	Priority Priority
	Status   Status
	SortBy   SortKey
}

func DefaultQuery() Query {
	return Query{Status: StatusAll, SortBy: SortCreated}
}

// Apply filters and sorts tasks according to q. The input slice is never
// modified; the result is always a fresh slice.
func Apply(tasks []Task, q Query) []Task {
	out := make([]Task, 0, len(tasks))
	search := strings.ToLower(q.Search)
	for _, t := range tasks {
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		switch q.Status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, comparator(q.SortBy))
	return out
}

func matchesSearch(t Task, lowered string) bool {
	if strings.Contains(strings.ToLower(t.Title), lowered) {
		return true
	}
	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), lowered)
}

func comparator(key SortKey) func(a, b Task) int {
	switch key {
	case SortDueDate:
		return compareDue
	case SortPriority:
		return func(a, b Task) int {
			return cmpInt(b.Priority.Rank(), a.Priority.Rank())
		}
	case SortAlphabetical:
		c := collate.New(language.English)
		return func(a, b Task) int {
			return c.CompareString(a.Title, b.Title)
		}
	default:
		return func(a, b Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}

// compareDue orders by due date ascending with undated tasks last.
func compareDue(a, b Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return a.DueDate.Compare(*b.DueDate)
}
