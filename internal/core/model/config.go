package model

import "time"

// FontConfig describes the label font.
type FontConfig struct {
	Family string
	Size   int
}

// OpacityConfig holds the opacity levels cycled by the user.
type OpacityConfig struct {
	Levels       []float64
	DefaultLevel int
}

// Level returns the opacity at index, wrapping around the configured levels.
func (config OpacityConfig) Level(index int) float64 {
	if len(config.Levels) == 0 {
		return 1
	}
	index %= len(config.Levels)
	if index < 0 {
		index += len(config.Levels)
	}
	return config.Levels[index]
}

// Next returns the index following index in the cycle.
func (config OpacityConfig) Next(index int) int {
	if len(config.Levels) == 0 {
		return 0
	}
	return (index + 1) % len(config.Levels)
}

// DisplayConfig groups the overlay settings.
type DisplayConfig struct {
	BgColors        []string
	Font            FontConfig
	Opacity         OpacityConfig
	UpdateInterval  time.Duration
	TmpHideInterval time.Duration
}

// DaysConfig groups the day-count settings.
type DaysConfig struct {
	AutoHiddenDays int
}

// Config is the read-only configuration record loaded at startup.
type Config struct {
	Display DisplayConfig
	Days    DaysConfig
}

// DefaultConfig returns the values used when a key is missing from config.json.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			BgColors: []string{"#e76f51", "#f4a261", "#e9c46a", "#2a9d8f", "#8ab17d", "#b56576"},
			Font: FontConfig{
				Family: "Sans",
				Size:   12,
			},
			Opacity: OpacityConfig{
				Levels:       []float64{1, 0.8, 0.6, 0.4},
				DefaultLevel: 0,
			},
			UpdateInterval:  10 * time.Minute,
			TmpHideInterval: 10 * time.Second,
		},
		Days: DaysConfig{
			AutoHiddenDays: 30,
		},
	}
}
