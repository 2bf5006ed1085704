package todo

import (
	"fmt"
	"time"
)

const week = 7 * 24 * time.Hour

// Summarize computes dashboard counters relative to now. Due dates are
// compared against the calendar date of now in now's location.
func Summarize(tasks []Task, now time.Time) Stats {
	today := DateOf(now)
	weekAgo := now.Add(-week)

	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else if t.DueDate != nil {
			switch c := t.DueDate.Compare(today); {
			case c == 0:
				s.DueToday++
			case c < 0:
				s.Overdue++
			}
		}
		if t.CompletedAt != nil && !t.CompletedAt.Before(weekAgo) && !t.CompletedAt.After(now) {
			s.CompletedThisWeek++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

func (s Stats) RateLabel() string {
	return fmt.Sprintf("%.0f%% Complete", s.CompletionRate)
}

// Alerts returns the due-today and overdue notices, omitting zero counts.
func (s Stats) Alerts() []string {
	var alerts []string
	if s.DueToday > 0 {
		alerts = append(alerts, fmt.Sprintf("%d task%s due today", s.DueToday, plural(s.DueToday)))
	}
	if s.Overdue > 0 {
		alerts = append(alerts, fmt.Sprintf("%d overdue task%s", s.Overdue, plural(s.Overdue)))
	}
	return alerts
}

// IsOverdue reports whether t is unfinished and due before today.
func IsOverdue(t Task, now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(DateOf(now))
}

// DayCount is the number of tasks completed on one calendar day.
type DayCount struct {
	Day   Date
	Count int
}

// CompletedPerDay counts completions per calendar day for the days ending
// with today, oldest first.
func CompletedPerDay(tasks []Task, now time.Time, days int) []DayCount {
	if days <= 0 {
		return nil
	}
	today := DateOf(now).Time()
	out := make([]DayCount, days)
	index := make(map[Date]int, days)
	for i := range days {
		d := DateOf(today.AddDate(0, 0, i-days+1))
		out[i] = DayCount{Day: d}
		index[d] = i
	}
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		if i, ok := index[DateOf(t.CompletedAt.In(now.Location()))]; ok {
			out[i].Count++
		}
	}
	return out
}

// CountByCategory counts tasks per category id.
func CountByCategory(tasks []Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Category]++
	}
	return counts
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
