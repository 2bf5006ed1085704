package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sadopc/taskflow/internal/todo"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			counts := todo.CountByCategory(a.board.Tasks)
			rows := make([][]string, 0, len(a.board.Categories))
			for _, c := range a.board.Categories {
				rows = append(rows, []string{c.ID, c.Name, c.Color, c.Icon, strconv.Itoa(counts[c.ID])})
			}
			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "COLOR", "ICON", "TASKS").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			return nil
		},
	}
	cmd.AddCommand(newCategoryAddCmd(o))
	return cmd
}

func newCategoryAddCmd(o *rootOptions) *cobra.Command {
	var color, icon string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := findCategory(a.board, args[0]); err == nil {
				return fmt.Errorf("category %q already exists", args[0])
			}
			b, c, err := a.board.AddCategory(todo.NewCategory{Name: args[0], Color: color, Icon: icon})
			if err != nil {
				return err
			}
			if err := a.save(b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "#6C63FF", "hex color")
	cmd.Flags().StringVar(&icon, "icon", "tag", "icon name")
	return cmd
}
