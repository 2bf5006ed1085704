package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sadopc/taskflow/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks to CSV, JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), o)
			if err != nil {
				return err
			}
			defer a.Close()

			path := out
			if path == "" {
				path = filepath.Join(a.cfg.ExportDir, export.FileName(f, a.board.Now().Format("2006-01-02")))
			}
			cats := export.CategoryIndex(a.board.Categories)
			if err := export.Write(f, a.board.Tasks, cats, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(a.board.Tasks), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "csv, json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default in TASKFLOW_EXPORT_DIR)")
	return cmd
}
