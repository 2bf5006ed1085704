package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/taskflow/internal/tui"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile   string
	ephemeral bool
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Terminal task manager",
		Long:          "Manage tasks and categories from the terminal. Without a subcommand the interactive dashboard starts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, o)
		},
	}

	root.PersistentFlags().StringVar(&o.envFile, "env", "", "env file to load (default .env)")
	root.PersistentFlags().BoolVar(&o.ephemeral, "memory", false, "keep everything in memory, nothing is saved")

	root.AddCommand(
		newListCmd(o),
		newStatsCmd(o),
		newAddCmd(o),
		newDoneCmd(o),
		newDeleteCmd(o),
		newCategoriesCmd(o),
		newExportCmd(o),
	)
	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, o *rootOptions) error {
	a, err := openApp(cmd.Context(), o)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewApp(a.store, a.adapter, a.board, tui.Options{
		ExportDir: a.cfg.ExportDir,
		Logger:    a.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
