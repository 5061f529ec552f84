package main

import (
	"fmt"
	"path/filepath"

	"countdown/internal/core/countdown"
	"countdown/internal/platform"
	"countdown/internal/storage"
	"countdown/resources"

	"github.com/spf13/cobra"
)

const appName = "Countdown"

type appPaths struct {
	DataDir string
	Dates   string
	Config  string
	State   string
}

func newRootCmd() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:   "countdown",
		Short: "Show upcoming dates as labels in a screen corner",
		Long: `Countdown keeps a short list of upcoming dates in a borderless,
always-on-top overlay and a tray icon.

Dates live in dates.json and settings in config.json inside the data
directory. Both are created from built-in defaults on first run. Edits to
dates.json are picked up while the overlay is running.

Run without a subcommand to start the overlay.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths(dataDir)
			if err != nil {
				return err
			}
			var launchArgs []string
			if dataDir != "" {
				launchArgs = []string{"--data-dir", paths.DataDir}
			}
			return runWidget(paths, launchArgs)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding dates.json and config.json")

	rootCmd.AddCommand(newListCmd(&dataDir))
	rootCmd.AddCommand(newAddCmd(&dataDir))
	rootCmd.AddCommand(newConfigCmd(&dataDir))
	rootCmd.AddCommand(newPathsCmd(&dataDir))
	return rootCmd
}

func resolvePaths(dataDir string) (appPaths, error) {
	if dataDir == "" {
		dir, err := platform.DataDir(platform.NewService(), appName)
		if err != nil {
			return appPaths{}, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = dir
	}
	dataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return appPaths{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return appPaths{
		DataDir: dataDir,
		Dates:   filepath.Join(dataDir, platform.DatesFileName),
		Config:  filepath.Join(dataDir, platform.ConfigFileName),
		State:   filepath.Join(dataDir, storage.StateFileName),
	}, nil
}

// loadCore loads config.json and dates.json, seeding either from the
// bundled defaults when missing.
func loadCore(paths appPaths, options countdown.Options) (*storage.ConfigStore, *countdown.Projector, error) {
	configStore := storage.NewConfigStore(paths.Config, resources.DefaultConfig())
	if err := configStore.Load(); err != nil {
		return nil, nil, err
	}

	eventStore := storage.NewEventStore(paths.Dates, resources.DefaultDates())
	projector := countdown.NewProjector(eventStore, configStore.Config(), options)
	if err := projector.Load(); err != nil {
		return nil, nil, err
	}
	return configStore, projector, nil
}
