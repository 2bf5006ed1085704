package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sadopc/taskflow/internal/persist"
	"github.com/sadopc/taskflow/internal/store"
	"github.com/sadopc/taskflow/internal/todo"
	"github.com/spf13/cobra"
)

type listOptions struct {
	search   string
	category string
	priority string
	status   string
	sortBy   string
}

func newListCmd(o *rootOptions) *cobra.Command {
	lo := &listOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			q, err := lo.query(a)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), a.board, a.board.Apply(q))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&lo.search, "search", "s", "", "match title or description")
	f.StringVarP(&lo.category, "category", "c", "", "category id or name")
	f.StringVarP(&lo.priority, "priority", "p", "", "low, medium or high")
	f.StringVar(&lo.status, "status", "", "all, active or completed (default from settings)")
	f.StringVar(&lo.sortBy, "sort", "", "created, dueDate, priority or alphabetical (default from settings)")
	return cmd
}

// query builds the filter from flags, falling back to the saved defaults
// for status and sort order.
func (lo *listOptions) query(a *app) (todo.Query, error) {
	q := todo.DefaultQuery()
	q.Search = lo.search

	status := lo.status
	if status == "" {
		status = a.store.SettingOr(store.SettingDefaultStatus, string(todo.StatusAll))
	}
	st, err := todo.ParseStatus(status)
	if err != nil {
		if lo.status != "" {
			return q, err
		}
		st = todo.StatusAll
	}
	q.Status = st

	sortBy := lo.sortBy
	if sortBy == "" {
		sortBy = a.store.SettingOr(store.SettingDefaultSort, string(todo.SortCreated))
	}
	sk, err := todo.ParseSortKey(sortBy)
	if err != nil {
		if lo.sortBy != "" {
			return q, err
		}
		sk = todo.SortCreated
	}
	q.SortBy = sk

	if lo.priority != "" {
		p, err := todo.ParsePriority(lo.priority)
		if err != nil {
			return q, err
		}
		q.Priority = p
	}
	if lo.category != "" {
		c, err := findCategory(a.board, lo.category)
		if err != nil {
			return q, err
		}
		q.Category = c.ID
	}
	return q, nil
}

func printTasks(w io.Writer, b todo.Board, tasks []todo.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	today := todo.DateOf(b.Now())
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
			if todo.IsOverdue(t, b.Now()) {
				due += " !"
			} else if t.DueDate.Equal(today) && !t.Completed {
				due += " today"
			}
		}
		rows = append(rows, []string{
			shortID(t.ID), check, t.Title, string(t.Priority), b.CategoryOrDefault(t.Category).Name, due,
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "", "TITLE", "PRIORITY", "CATEGORY", "DUE").
		Rows(rows...)
	fmt.Fprintln(w, tbl.Render())
	fmt.Fprintf(w, "%d of %d tasks\n", len(tasks), len(b.Tasks))
}

func newStatsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			printStats(out, a.board.Stats())

			// Only set when the tasks live in the SQLite database.
			saved, ok, err := a.store.UpdatedAt(persist.TasksKey)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "  last saved  %s\n", saved.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func printStats(w io.Writer, s todo.Stats) {
	fmt.Fprintln(w, s.RateLabel())
	fmt.Fprintf(w, "  total       %d\n", s.Total)
	fmt.Fprintf(w, "  completed   %d\n", s.Completed)
	fmt.Fprintf(w, "  active      %d\n", s.Active)
	fmt.Fprintf(w, "  this week   %d\n", s.CompletedThisWeek)
	fmt.Fprintf(w, "  due today   %d\n", s.DueToday)
	fmt.Fprintf(w, "  overdue     %d\n", s.Overdue)
	for _, alert := range s.Alerts() {
		fmt.Fprintf(w, "! %s\n", alert)
	}
}
