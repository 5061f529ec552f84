package main

import (
	"fmt"

	"countdown/internal/core/countdown"
	"countdown/internal/palette"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newListCmd(dataDir *string) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the countdowns the overlay would show",
		Long: `Print the visible countdowns in the same order and format as the overlay.

Examples:
  countdown list
  countdown list --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths(*dataDir)
			if err != nil {
				return err
			}
			_, projector, err := loadCore(paths, countdown.Options{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tipStyle := lipgloss.NewStyle().Faint(true)
			for label := range projector.DaysList() {
				if plain {
					fmt.Fprintf(out, "%s\t%s\n", label.Text, label.Tip)
					continue
				}
				fill, _ := palette.Parse(label.Color)
				chip := lipgloss.NewStyle().
					Background(lipgloss.Color(palette.Hex(fill))).
					Foreground(lipgloss.Color(palette.Hex(palette.Contrast(fill)))).
					Bold(true).
					Padding(0, 1).
					Render(label.Text)
				fmt.Fprintf(out, "%s %s\n", chip, tipStyle.Render(label.Tip))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print tab-separated text without colors")
	return cmd
}
