package main

import (
	"encoding/json"
	"fmt"

	"countdown/internal/storage"
	"countdown/resources"

	"github.com/spf13/cobra"
)

func newConfigCmd(dataDir *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect config.json",
		Long: `Inspect config.json. The configuration is read-only at runtime;
edit the file and restart the overlay to change it.`,
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a dotted config key",
		Long: `Print the JSON value of a config key such as display.bgcolors or
days.autoHiddenDays.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths(*dataDir)
			if err != nil {
				return err
			}
			store := storage.NewConfigStore(paths.Config, resources.DefaultConfig())
			if err := store.Load(); err != nil {
				return err
			}

			value, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("config key %q not found", args[0])
			}
			serialized, err := json.MarshalIndent(value, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal config value: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(serialized))
			return nil
		},
	}

	configCmd.AddCommand(getCmd)
	return configCmd
}

func newPathsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print where dates, config and state are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths(*dataDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dates:  %s\n", paths.Dates)
			fmt.Fprintf(out, "config: %s\n", paths.Config)
			fmt.Fprintf(out, "state:  %s\n", paths.State)
			return nil
		},
	}
}
