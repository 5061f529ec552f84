package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"countdown/internal/core/model"
)

// Dotted keys understood by ConfigStore.Config.
const (
	KeyBgColors        = "display.bgcolors"
	KeyFontFamily      = "display.font.family"
	KeyFontSize        = "display.font.size"
	KeyOpacityLevels   = "display.opacity.levels"
	KeyOpacityDefault  = "display.opacity.defaultLevel"
	KeyUpdateInterval  = "display.updateInterval"
	KeyTmpHideInterval = "display.tmpHideInterval"
	KeyAutoHiddenDays  = "days.autoHiddenDays"
)

// ConfigStore holds the configuration record. It is read-only once loaded.
type ConfigStore struct {
	path     string
	defaults []byte
	data     map[string]any
}

// NewConfigStore creates a store for path that seeds from defaults on first run.
func NewConfigStore(path string, defaults []byte) *ConfigStore {
	return &ConfigStore{path: path, defaults: defaults}
}

// Path returns the primary config path.
func (store *ConfigStore) Path() string {
	return store.path
}

// Load reads the primary config, falling back to the bundled default and
// writing it to the primary path when the file does not exist yet.
func (store *ConfigStore) Load() error {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return &ConfigLoadError{Path: store.path, Err: fmt.Errorf("read config file: %w", err)}
		}
		data, parseErr := parseConfig(store.defaults)
		if parseErr != nil {
			return &ConfigLoadError{Path: "bundled config.json", Err: parseErr}
		}
		if err := writeFile(store.path, store.defaults); err != nil {
			return err
		}
		store.data = data
		return nil
	}

	data, err := parseConfig(rawData)
	if err != nil {
		return &ConfigLoadError{Path: store.path, Err: err}
	}
	store.data = data
	return nil
}

// Get returns the value for key. A literal top-level key wins; otherwise the
// dotted path is walked through nested objects. Objects and arrays are
// returned as copies.
func (store *ConfigStore) Get(key string) (any, bool) {
	value, ok := store.lookup(key)
	if !ok {
		return nil, false
	}
	return cloneValue(value), true
}

func (store *ConfigStore) lookup(key string) (any, bool) {
	if store.data == nil {
		return nil, false
	}
	if value, ok := store.data[key]; ok {
		return value, true
	}

	var current any = store.data
	for _, part := range strings.Split(key, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = object[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set always fails: the configuration is edited on disk, never at runtime.
func (store *ConfigStore) Set(key string, value any) error {
	return &ReadOnlyConfigError{Key: key}
}

// Config returns the typed configuration. Missing or mistyped keys keep the
// value from model.DefaultConfig.
func (store *ConfigStore) Config() model.Config {
	config := model.DefaultConfig()

	if colors, ok := store.stringSlice(KeyBgColors); ok && len(colors) > 0 {
		config.Display.BgColors = colors
	}
	if family, ok := store.lookup(KeyFontFamily); ok {
		if text, ok := family.(string); ok && text != "" {
			config.Display.Font.Family = text
		}
	}
	if size, ok := store.intValue(KeyFontSize); ok && size > 0 {
		config.Display.Font.Size = size
	}
	if levels, ok := store.floatSlice(KeyOpacityLevels); ok && len(levels) > 0 {
		config.Display.Opacity.Levels = levels
	}
	if level, ok := store.intValue(KeyOpacityDefault); ok && level >= 0 && level < len(config.Display.Opacity.Levels) {
		config.Display.Opacity.DefaultLevel = level
	} else if config.Display.Opacity.DefaultLevel >= len(config.Display.Opacity.Levels) {
		config.Display.Opacity.DefaultLevel = 0
	}
	if seconds, ok := store.intValue(KeyUpdateInterval); ok && seconds > 0 {
		config.Display.UpdateInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := store.intValue(KeyTmpHideInterval); ok && seconds > 0 {
		config.Display.TmpHideInterval = time.Duration(seconds) * time.Second
	}
	if days, ok := store.intValue(KeyAutoHiddenDays); ok && days >= 0 {
		config.Days.AutoHiddenDays = days
	}

	return config
}

func (store *ConfigStore) intValue(key string) (int, bool) {
	value, ok := store.lookup(key)
	if !ok {
		return 0, false
	}
	number, ok := value.(float64)
	if !ok || number != math.Trunc(number) {
		return 0, false
	}
	return int(number), true
}

func (store *ConfigStore) stringSlice(key string) ([]string, bool) {
	value, ok := store.lookup(key)
	if !ok {
		return nil, false
	}
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		result = append(result, text)
	}
	return result, true
}

func (store *ConfigStore) floatSlice(key string) ([]float64, bool) {
	value, ok := store.lookup(key)
	if !ok {
		return nil, false
	}
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	result := make([]float64, 0, len(items))
	for _, item := range items {
		number, ok := item.(float64)
		if !ok || number < 0 || number > 1 {
			continue
		}
		result = append(result, number)
	}
	return result, true
}

func parseConfig(rawData []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(rawData, &data); err != nil {
		return nil, fmt.Errorf("parse config json: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("parse config json: top level must be an object")
	}
	return data, nil
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		cloned := make(map[string]any, len(typed))
		for key, item := range typed {
			cloned[key] = cloneValue(item)
		}
		return cloned
	case []any:
		cloned := make([]any, len(typed))
		for i, item := range typed {
			cloned[i] = cloneValue(item)
		}
		return cloned
	default:
		return value
	}
}
