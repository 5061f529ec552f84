package storage

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StateFileName is the widget state file kept next to dates.json.
const StateFileName = "state.yaml"

// WidgetState is UI state remembered between runs.
type WidgetState struct {
	OpacityLevel int
	Visible      bool
	Autostart    bool
}

type yamlState struct {
	OpacityLevel *int  `yaml:"opacity_level"`
	Visible      *bool `yaml:"visible"`
	Autostart    bool  `yaml:"autostart"`
}

// LoadWidgetState reads the widget state from path.
// If the file does not exist, fallback is returned unchanged.
func LoadWidgetState(path string, fallback WidgetState) (WidgetState, error) {
	state := fallback

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read state file: %w", err)
	}

	var fileData yamlState
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return state, fmt.Errorf("parse state yaml: %w", err)
	}

	applyYamlState(&state, fileData)
	return state, nil
}

// SaveWidgetState writes the widget state to path.
func SaveWidgetState(path string, state WidgetState) error {
	level := state.OpacityLevel
	visible := state.Visible
	fileData := yamlState{
		OpacityLevel: &level,
		Visible:      &visible,
		Autostart:    state.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}

	return writeFile(path, serialized)
}

func applyYamlState(state *WidgetState, fileData yamlState) {
	if fileData.OpacityLevel != nil && *fileData.OpacityLevel >= 0 {
		state.OpacityLevel = *fileData.OpacityLevel
	}
	if fileData.Visible != nil {
		state.Visible = *fileData.Visible
	}
	state.Autostart = fileData.Autostart
}
