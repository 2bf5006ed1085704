package cmd

import (
	"fmt"
	"strings"

	"github.com/sadopc/taskflow/internal/store"
	"github.com/sadopc/taskflow/internal/todo"
	"github.com/spf13/cobra"
)

func newAddCmd(o *rootOptions) *cobra.Command {
	var description, priority, category, due string
	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			n := todo.NewTask{
				Title:       strings.Join(args, " "),
				Description: description,
			}

			if priority == "" {
				priority = a.store.SettingOr(store.SettingDefaultPriority, string(todo.PriorityMedium))
			}
			if n.Priority, err = todo.ParsePriority(priority); err != nil {
				return err
			}

			if category != "" {
				c, err := findCategory(a.board, category)
				if err != nil {
					return err
				}
				n.Category = c.ID
			} else if c, ok := a.board.Category(a.store.SettingOr(store.SettingDefaultCategory, "")); ok {
				n.Category = c.ID
			} else {
				n.Category = a.board.CategoryOrDefault("").ID
			}

			if due != "" {
				d, err := todo.ParseDate(due)
				if err != nil {
					return fmt.Errorf("--due: %w", err)
				}
				n.DueDate = &d
			}

			b, t, err := a.board.Add(n)
			if err != nil {
				return err
			}
			if err := a.save(b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&description, "description", "d", "", "longer description")
	f.StringVarP(&priority, "priority", "p", "", "low, medium or high (default from settings)")
	f.StringVarP(&category, "category", "c", "", "category id or name (default from settings)")
	f.StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	return cmd
}

func newDoneCmd(o *rootOptions) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task as completed",
		Long:  "Mark a task as completed. ID may be any unique prefix of the task id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := findTask(a.board, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if t.Completed != undo {
				state := "open"
				if t.Completed {
					state = "completed"
				}
				fmt.Fprintf(out, "%s is already %s\n", t.Title, state)
				return nil
			}
			if err := a.save(a.board.Toggle(t.ID)); err != nil {
				return err
			}
			verb := "Completed"
			if undo {
				verb = "Reopened"
			}
			fmt.Fprintf(out, "%s %s\n", verb, t.Title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "reopen a completed task instead")
	return cmd
}

func newDeleteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := findTask(a.board, args[0])
			if err != nil {
				return err
			}
			if err := a.save(a.board.Delete(t.ID)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", t.Title)
			return nil
		},
	}
}
