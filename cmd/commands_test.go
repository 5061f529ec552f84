package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"countdown/internal/core/model"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPathsUsesDataDir(t *testing.T) {
	dir := t.TempDir()
	out, err := executeCommand(t, "paths", "--data-dir", dir)
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	for _, name := range []string{"dates.json", "config.json", "state.yaml"} {
		if !strings.Contains(out, filepath.Join(dir, name)) {
			t.Fatalf("expected %s in output:\n%s", name, out)
		}
	}
}

func TestListSeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	if _, err := executeCommand(t, "list", "--plain", "--data-dir", dir); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, name := range []string{"dates.json", "config.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to be seeded: %v", name, err)
		}
	}
}

func TestAddThenList(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dates.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write dates: %v", err)
	}

	out, err := executeCommand(t, "add", "Launch", "2999-12-31", "--color", "#112233", "--data-dir", dir)
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Added Launch (2999/12/31)") {
		t.Fatalf("unexpected add output: %q", out)
	}

	out, err = executeCommand(t, "list", "--plain", "--data-dir", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(out, "Launch: ") || !strings.HasSuffix(out, "\t2999/12/31\n") {
		t.Fatalf("unexpected list output: %q", out)
	}

	rawData, err := os.ReadFile(filepath.Join(dir, "dates.json"))
	if err != nil {
		t.Fatalf("read dates: %v", err)
	}
	var records []model.EventRecord
	if err := json.Unmarshal(rawData, &records); err != nil {
		t.Fatalf("decode dates: %v", err)
	}
	if len(records) != 1 || records[0].BgColor != "#112233" || records[0].Hidden != model.HiddenNever {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestAddHiddenRecordIsNotListed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dates.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write dates: %v", err)
	}
	if _, err := executeCommand(t, "add", "Secret", "2999-01-01", "--hidden", "true", "--data-dir", dir); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := executeCommand(t, "list", "--plain", "--data-dir", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad date", args: []string{"add", "Launch", "31.12.2999"}},
		{name: "blank name", args: []string{"add", "  ", "2999-12-31"}},
		{name: "bad hidden", args: []string{"add", "Launch", "2999-12-31", "--hidden", "sometimes"}},
		{name: "missing date", args: []string{"add", "Launch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append(tt.args, "--data-dir", dir)
			if _, err := executeCommand(t, args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
			if _, err := os.Stat(filepath.Join(dir, "dates.json")); !os.IsNotExist(err) {
				t.Fatalf("expected dates.json to stay untouched, stat err = %v", err)
			}
		})
	}
}

func TestListReportsCorruptDates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dates.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write dates: %v", err)
	}
	if _, err := executeCommand(t, "list", "--data-dir", dir); err == nil {
		t.Fatal("expected error for corrupt dates.json")
	}
}

func TestConfigGet(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "config", "get", "days.autoHiddenDays", "--data-dir", dir)
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "30" {
		t.Fatalf("expected 30, got %q", out)
	}

	out, err = executeCommand(t, "config", "get", "display.font.family", "--data-dir", dir)
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != `"Sans"` {
		t.Fatalf("expected \"Sans\", got %q", out)
	}

	if _, err := executeCommand(t, "config", "get", "display.missing", "--data-dir", dir); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{count: 0, want: "No upcoming dates"},
		{count: 1, want: "1 countdown shown"},
		{count: 3, want: "3 countdowns shown"},
	}

	for _, tt := range tests {
		labels := make([]model.Label, tt.count)
		if got := statusLine(labels); got != tt.want {
			t.Fatalf("statusLine(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
