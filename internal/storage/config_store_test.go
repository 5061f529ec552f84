package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `{
  "display": {
    "bgcolors": ["#111111", "#222222"],
    "font": {"family": "Mono", "size": 14},
    "opacity": {"levels": [1.0, 0.5], "defaultLevel": 1},
    "updateInterval": 60,
    "tmpHideInterval": 5
  },
  "days": {"autoHiddenDays": 10}
}`

func TestConfigStoreSeedsPrimaryFromDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	store := NewConfigStore(path, []byte(testConfig))

	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("primary file not written: %v", err)
	}
	if string(written) != testConfig {
		t.Errorf("primary file content differs from bundled default")
	}

	config := store.Config()
	if len(config.Display.BgColors) != 2 || config.Display.BgColors[1] != "#222222" {
		t.Errorf("bgcolors = %v", config.Display.BgColors)
	}
	if config.Display.Font.Family != "Mono" || config.Display.Font.Size != 14 {
		t.Errorf("font = %+v", config.Display.Font)
	}
	if config.Display.Opacity.DefaultLevel != 1 || config.Display.Opacity.Level(1) != 0.5 {
		t.Errorf("opacity = %+v", config.Display.Opacity)
	}
	if config.Display.UpdateInterval != time.Minute {
		t.Errorf("update interval = %v", config.Display.UpdateInterval)
	}
	if config.Display.TmpHideInterval != 5*time.Second {
		t.Errorf("tmp hide interval = %v", config.Display.TmpHideInterval)
	}
	if config.Days.AutoHiddenDays != 10 {
		t.Errorf("auto hidden days = %d", config.Days.AutoHiddenDays)
	}
}

func TestConfigStorePrefersPrimary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"days": {"autoHiddenDays": 3}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewConfigStore(path, []byte(testConfig))
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	config := store.Config()
	if config.Days.AutoHiddenDays != 3 {
		t.Errorf("auto hidden days = %d, want 3", config.Days.AutoHiddenDays)
	}
	if config.Display.Font.Size != 12 {
		t.Errorf("missing key should fall back to default font size, got %d", config.Display.Font.Size)
	}
}

func TestConfigStoreGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	flat := `{"display.updateInterval": 30, "display": {"updateInterval": 90}}`
	if err := os.WriteFile(path, []byte(flat), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewConfigStore(path, nil)
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	value, ok := store.Get(KeyUpdateInterval)
	if !ok || value != float64(30) {
		t.Errorf("flat key should win, got %v", value)
	}
	if _, ok := store.Get("display.missing"); ok {
		t.Error("missing key should not be found")
	}
	if _, ok := store.Get("display.updateInterval.deeper"); ok {
		t.Error("walking past a scalar should not be found")
	}
}

func TestConfigStoreSetIsReadOnly(t *testing.T) {
	store := NewConfigStore(filepath.Join(t.TempDir(), "config.json"), []byte(testConfig))
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := store.Set(KeyAutoHiddenDays, 99)
	var readOnly *ReadOnlyConfigError
	if !errors.As(err, &readOnly) {
		t.Fatalf("Set error = %v, want ReadOnlyConfigError", err)
	}
	if readOnly.Key != KeyAutoHiddenDays {
		t.Errorf("error key = %q", readOnly.Key)
	}

	value, _ := store.Get(KeyAutoHiddenDays)
	if value != float64(10) {
		t.Errorf("value changed to %v", value)
	}
}

func TestConfigStoreGetReturnsCopies(t *testing.T) {
	store := NewConfigStore(filepath.Join(t.TempDir(), "config.json"), []byte(testConfig))
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	display, _ := store.Get("display")
	display.(map[string]any)["updateInterval"] = 1.0
	display.(map[string]any)["font"].(map[string]any)["size"] = 99.0

	colors, _ := store.Get(KeyBgColors)
	colors.([]any)[0] = "#ffffff"

	if value, _ := store.Get(KeyUpdateInterval); value != float64(60) {
		t.Errorf("updateInterval changed to %v", value)
	}
	if value, _ := store.Get(KeyFontSize); value != float64(14) {
		t.Errorf("font size changed to %v", value)
	}
	if value, _ := store.Get(KeyBgColors); value.([]any)[0] != "#111111" {
		t.Errorf("bgcolors changed to %v", value)
	}
	if config := store.Config(); config.Display.UpdateInterval != time.Minute || config.Display.BgColors[0] != "#111111" {
		t.Errorf("typed config changed: %+v", config.Display)
	}
}

func TestConfigStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()

	missingDefault := NewConfigStore(filepath.Join(dir, "a.json"), []byte("{broken"))
	var loadErr *ConfigLoadError
	if err := missingDefault.Load(); !errors.As(err, &loadErr) {
		t.Errorf("corrupt bundled default: got %v, want ConfigLoadError", err)
	}

	corruptPath := filepath.Join(dir, "b.json")
	if err := os.WriteFile(corruptPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	corrupt := NewConfigStore(corruptPath, []byte(testConfig))
	if err := corrupt.Load(); !errors.As(err, &loadErr) {
		t.Errorf("corrupt primary: got %v, want ConfigLoadError", err)
	}

	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	unwritable := NewConfigStore(filepath.Join(blocker, "config.json"), []byte(testConfig))
	var writeErr *FileWriteError
	if err := unwritable.Load(); !errors.As(err, &writeErr) {
		t.Errorf("unwritable primary: got %v, want FileWriteError", err)
	}
}
