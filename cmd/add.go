package main

import (
	"fmt"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/ui/editor"

	"github.com/spf13/cobra"
)

func newAddCmd(dataDir *string) *cobra.Command {
	var hidden string
	var color string

	cmd := &cobra.Command{
		Use:   "add <name> <YYYY-MM-DD>",
		Short: "Add a countdown to dates.json",
		Long: `Append a countdown to dates.json. A running overlay picks it up.

Examples:
  countdown add "Paper deadline" 2026-11-14
  countdown add Rebuttal 2027-01-20 --hidden auto --color "#2a9d8f"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := editor.Draft{Name: args[0], Date: args[1], Hidden: hidden, Color: color}.Record()
			if err != nil {
				return err
			}

			paths, err := resolvePaths(*dataDir)
			if err != nil {
				return err
			}
			_, projector, err := loadCore(paths, countdown.Options{})
			if err != nil {
				return err
			}
			if err := projector.Add(record); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s\n", record.Name, countdown.Tip(record), paths.Dates)
			return nil
		},
	}
	cmd.Flags().StringVar(&hidden, "hidden", "false", "visibility: false, true or auto")
	cmd.Flags().StringVar(&color, "color", model.RandomColor, "background color, or random")
	return cmd
}
