package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names kept in the data directory.
const (
	DatesFileName  = "dates.json"
	ConfigFileName = "config.json"
)

// AutostartEntry describes how the widget is launched at login.
type AutostartEntry struct {
	Name     string
	ExecPath string
	Args     []string
}

func (entry AutostartEntry) validate() error {
	if strings.TrimSpace(entry.Name) == "" {
		return errors.New("app name is empty")
	}
	if entry.ExecPath == "" {
		return errors.New("exec path is empty")
	}
	return nil
}

// commandLine joins the executable and its arguments, quoting each part with quote.
func (entry AutostartEntry) commandLine(quote func(string) string) string {
	parts := make([]string, 0, len(entry.Args)+1)
	parts = append(parts, quote(entry.ExecPath))
	for _, arg := range entry.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

// Service defines OS-specific helpers needed by the widget.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(entry AutostartEntry) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// DataDir returns the per-user directory holding dates.json and config.json.
func DataDir(service Service, appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "countdown"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
